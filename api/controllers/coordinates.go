package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/coordinates"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/types"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type coordinateUploadRequest struct {
	Brand      string          `json:"brand" validate:"required,max=64"`
	Resolution string          `json:"resolution" validate:"required,max=16"`
	Payload    types.RegionMap `json:"payload" validate:"required"`
}

// CoordinateUpload registers a new template version in the catalogue.
func CoordinateUpload(svc coordinates.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var body coordinateUploadRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		template, err := svc.Upload(r.Context(), coordinates.UploadInput{
			Brand:      body.Brand,
			Resolution: body.Resolution,
			Payload:    body.Payload,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, template)
	}
}

// CoordinateList returns the catalogue entries for one brand.
func CoordinateList(svc coordinates.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		files, err := svc.List(r.Context(), r.URL.Query().Get("brand"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"files": files})
	}
}

// CoordinateGet returns one template, payload included.
func CoordinateGet(svc coordinates.Catalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		version, err := strconv.Atoi(chi.URLParam(r, "version"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "version must be numeric"))
			return
		}

		template, err := svc.Get(r.Context(), chi.URLParam(r, "brand"), chi.URLParam(r, "resolution"), version)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, template)
	}
}

type coordinateAssignRequest struct {
	StoreID    string `json:"store_id" validate:"required"`
	BayNumber  string `json:"bay_number" validate:"required"`
	Brand      string `json:"brand,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Version    int    `json:"version,omitempty" validate:"omitempty,gte=1"`
	Filename   string `json:"filename,omitempty"`
}

// CoordinateAssign points a bay at a catalogue template.
func CoordinateAssign(svc coordinates.Binder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binder service unavailable"))
			return
		}

		var body coordinateAssignRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignment, err := svc.Assign(r.Context(), coordinates.AssignInput{
			StoreID:    body.StoreID,
			BayNumber:  body.BayNumber,
			Brand:      body.Brand,
			Resolution: body.Resolution,
			Version:    body.Version,
			Filename:   body.Filename,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, assignment)
	}
}

// BayCoordinateLookup reports which template a bay should load, or null
// when the bay has not been configured yet.
func BayCoordinateLookup(svc coordinates.Binder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "binder service unavailable"))
			return
		}

		assignment, err := svc.LookupForBay(r.Context(), chi.URLParam(r, "storeID"), chi.URLParam(r, "bayNumber"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"coordinate": assignment})
	}
}
