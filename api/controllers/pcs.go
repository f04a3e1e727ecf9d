package controllers

import (
	"net/http"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/bindings"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type pcRegisterRequest struct {
	RegistrationCode string `json:"registration_code" validate:"required"`
	PCUniqueID       string `json:"pc_unique_id" validate:"required,max=128"`
	StoreID          string `json:"store_id" validate:"required"`
	BayNumber        string `json:"bay_number" validate:"required"`
	BayName          string `json:"bay_name,omitempty" validate:"omitempty,max=128"`
}

// PCRegister binds a bay PC to its slot.
func PCRegister(svc bindings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bindings service unavailable"))
			return
		}

		var body pcRegisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		binding, err := svc.Register(r.Context(), bindings.RegisterInput{
			RegistrationCode: body.RegistrationCode,
			PCUniqueID:       body.PCUniqueID,
			StoreID:          body.StoreID,
			BayNumber:        body.BayNumber,
			BayName:          validators.SanitizeString(body.BayName, 128),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, binding)
	}
}

type pcDeregisterRequest struct {
	PCUniqueID string `json:"pc_unique_id" validate:"required,max=128"`
}

// PCDeregister retires a PC's active binding. Safe to repeat.
func PCDeregister(svc bindings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bindings service unavailable"))
			return
		}

		var body pcDeregisterRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deregister(r.Context(), body.PCUniqueID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deregistered"})
	}
}
