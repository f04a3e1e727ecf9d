package middleware

import (
	"net/http"
	"strings"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	pkgauth "github.com/swingbaylabs/swingbay-backend/pkg/auth"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

// AdminAuth validates a bearer token and seeds the request context with
// the operator identity.
func AdminAuth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			claims, err := pkgauth.ParseAdminToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid token"))
				return
			}

			ctx := WithAdminUsername(r.Context(), claims.Username)
			if logg != nil {
				ctx = logg.WithField(ctx, "admin_username", claims.Username)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
