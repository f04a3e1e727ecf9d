package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

// StoreGet returns a store's public profile for bay PC clients.
func StoreGet(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		store, err := svc.GetStore(r.Context(), chi.URLParam(r, "storeID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}

// StoreBays lists a store's bays with their current occupancy.
func StoreBays(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		bays, err := svc.ListBays(r.Context(), chi.URLParam(r, "storeID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, bays)
	}
}

type storeCreateRequest struct {
	StoreID   string `json:"store_id" validate:"required,min=2,max=64"`
	StoreName string `json:"store_name" validate:"required,min=1,max=128"`
	BaysCount int    `json:"bays_count" validate:"required,gte=1,max=500"`
}

// AdminStoreCreate provisions a store and materializes its bay rows.
func AdminStoreCreate(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		var body storeCreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.CreateStore(r.Context(), registry.CreateStoreInput{
			StoreID:   body.StoreID,
			StoreName: validators.SanitizeString(body.StoreName, 128),
			BaysCount: body.BaysCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, store)
	}
}

type storeUpdateRequest struct {
	StoreName *string `json:"store_name,omitempty" validate:"omitempty,min=1,max=128"`
	BaysCount *int    `json:"bays_count,omitempty" validate:"omitempty,gte=1,max=500"`
}

// AdminStoreUpdate adjusts a store's name or grows its bay capacity.
func AdminStoreUpdate(svc registry.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "registry service unavailable"))
			return
		}

		var body storeUpdateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.UpdateStore(r.Context(), chi.URLParam(r, "storeID"), registry.UpdateStoreInput{
			StoreName: body.StoreName,
			BaysCount: body.BaysCount,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store)
	}
}
