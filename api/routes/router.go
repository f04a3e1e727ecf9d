package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/swingbaylabs/swingbay-backend/api/controllers"
	"github.com/swingbaylabs/swingbay-backend/api/middleware"
	"github.com/swingbaylabs/swingbay-backend/internal/adminauth"
	"github.com/swingbaylabs/swingbay-backend/internal/bindings"
	"github.com/swingbaylabs/swingbay-backend/internal/coordinates"
	"github.com/swingbaylabs/swingbay-backend/internal/normalizer"
	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/db"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
	"github.com/swingbaylabs/swingbay-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	adminAuthService adminauth.Service,
	registryService registry.Service,
	codeService regcodes.Service,
	bindingsService bindings.Service,
	catalogService coordinates.Catalog,
	binderService coordinates.Binder,
	normalizerService normalizer.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	registerPolicy := middleware.NewRegisterRateLimitPolicy(
		cfg.RegisterRateLimit.Window,
		cfg.RegisterRateLimit.IPLimit,
		cfg.RegisterRateLimit.PCLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger(redisClient)))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())

		r.Route("/stores", func(r chi.Router) {
			r.Get("/{storeID}", controllers.StoreGet(registryService, logg))
			r.Get("/{storeID}/bays", controllers.StoreBays(registryService, logg))
			r.Get("/{storeID}/bays/{bayNumber}/coordinates", controllers.BayCoordinateLookup(binderService, logg))
		})

		r.Route("/pcs", func(r chi.Router) {
			r.With(middleware.RegisterRateLimit(registerPolicy, limiterStore(redisClient), logg)).
				Post("/register", controllers.PCRegister(bindingsService, logg))
			r.Post("/deregister", controllers.PCDeregister(bindingsService, logg))
		})

		r.Route("/coordinates", func(r chi.Router) {
			r.Get("/", controllers.CoordinateList(catalogService, logg))
			r.Get("/{brand}/{resolution}/{version}", controllers.CoordinateGet(catalogService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminAuthLogin(adminAuthService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))

			r.Get("/ping", controllers.AdminPing())

			r.Route("/stores", func(r chi.Router) {
				r.Post("/", controllers.AdminStoreCreate(registryService, logg))
				r.Patch("/{storeID}", controllers.AdminStoreUpdate(registryService, logg))
			})

			r.Route("/registration_codes", func(r chi.Router) {
				r.Post("/", controllers.AdminCodeIssue(codeService, logg))
				r.Get("/", controllers.AdminCodeList(codeService, logg))
			})

			r.Route("/coordinates", func(r chi.Router) {
				r.Post("/", controllers.CoordinateUpload(catalogService, logg))
				r.Post("/assign", controllers.CoordinateAssign(binderService, logg))
			})

			r.Route("/normalizer", func(r chi.Router) {
				r.Post("/scan", controllers.NormalizerScan(normalizerService, logg))
				r.Post("/repair", controllers.NormalizerRepair(normalizerService, logg))
			})
		})
	})

	return r
}

type rateLimiterStore interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// limiterStore keeps a nil *redis.Client from turning into a non-nil
// interface inside the middleware's store check.
func limiterStore(client *redis.Client) rateLimiterStore {
	if client == nil {
		return nil
	}
	return client
}

func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
