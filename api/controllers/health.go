package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwingBay-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the hard dependencies and reports per-component state.
func HealthReady(cfg *config.Config, logg *logger.Logger, dbP, redisP pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-SwingBay-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]string{}
		ready := true

		components["db"] = checkComponent(ctx, logg, "db", dbP, &ready)
		components["redis"] = checkComponent(ctx, logg, "redis", redisP, &ready)

		status := "ready"
		httpStatus := http.StatusOK
		if !ready {
			status = "degraded"
			httpStatus = http.StatusServiceUnavailable
		}

		responses.WriteSuccessStatus(w, httpStatus, map[string]any{
			"status":     status,
			"components": components,
		})
	}
}

func checkComponent(ctx context.Context, logg *logger.Logger, name string, p pinger, ready *bool) string {
	if p == nil {
		*ready = false
		return "unconfigured"
	}
	if err := p.Ping(ctx); err != nil {
		if logg != nil {
			logg.Error(logg.WithField(ctx, "component", name), "readiness check failed", err)
		}
		*ready = false
		return "down"
	}
	return "up"
}
