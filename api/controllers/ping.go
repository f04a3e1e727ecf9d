package controllers

import (
	"net/http"

	"github.com/swingbaylabs/swingbay-backend/api/middleware"
	"github.com/swingbaylabs/swingbay-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func AdminPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "admin", "status": "ok"}
		if username := middleware.AdminUsernameFromContext(r.Context()); username != "" {
			payload["admin_username"] = username
		}
		responses.WriteSuccess(w, payload)
	}
}
