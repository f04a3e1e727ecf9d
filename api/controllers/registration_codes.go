package controllers

import (
	"net/http"

	"github.com/swingbaylabs/swingbay-backend/api/middleware"
	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type codeIssueRequest struct {
	Notes string `json:"notes,omitempty" validate:"omitempty,max=256"`
}

// AdminCodeIssue mints a fresh registration code, revoking any active one.
func AdminCodeIssue(svc regcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "code service unavailable"))
			return
		}

		var body codeIssueRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		issuedBy := middleware.AdminUsernameFromContext(r.Context())
		code, err := svc.Issue(r.Context(), issuedBy, validators.SanitizeString(body.Notes, 256))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, code)
	}
}

// AdminCodeList returns the full code history, newest first.
func AdminCodeList(svc regcodes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "code service unavailable"))
			return
		}

		codes, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"codes": codes})
	}
}
