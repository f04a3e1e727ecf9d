package controllers

import (
	"net/http"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/adminauth"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

// AdminAuthLogin wires the operator login endpoint into the HTTP layer.
func AdminAuthLogin(svc adminauth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			err := pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable")
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body adminauth.LoginRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
