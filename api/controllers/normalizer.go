package controllers

import (
	"net/http"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/api/validators"
	"github.com/swingbaylabs/swingbay-backend/internal/normalizer"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type normalizerScanRequest struct {
	StoreID string `json:"store_id,omitempty"`
}

// NormalizerScan classifies bay identifiers without touching anything.
func NormalizerScan(svc normalizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "normalizer service unavailable"))
			return
		}

		var body normalizerScanRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Scan(r.Context(), body.StoreID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}

type normalizerRepairRequest struct {
	StoreID string `json:"store_id,omitempty"`
	DryRun  bool   `json:"dry_run,omitempty"`
}

// NormalizerRepair runs a repair pass, or plans one when dry_run is set.
func NormalizerRepair(svc normalizer.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "normalizer service unavailable"))
			return
		}

		var body normalizerRepairRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		report, err := svc.Repair(r.Context(), normalizer.RepairInput{
			StoreID: body.StoreID,
			DryRun:  body.DryRun,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
