package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/swingbaylabs/swingbay-backend/api/responses"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/logger"
)

type rateLimiterStore interface {
	IncrWithTTL(context.Context, string, time.Duration) (int64, error)
}

// RegisterRateLimitPolicy defines the throttling parameters for the bay
// registration surface.
type RegisterRateLimitPolicy struct {
	window  time.Duration
	ipLimit int
	pcLimit int
}

// NewRegisterRateLimitPolicy builds a policy with the supplied window and limits.
func NewRegisterRateLimitPolicy(window time.Duration, ipLimit, pcLimit int) RegisterRateLimitPolicy {
	return RegisterRateLimitPolicy{
		window:  window,
		ipLimit: ipLimit,
		pcLimit: pcLimit,
	}
}

func (p RegisterRateLimitPolicy) enabled() bool {
	return p.window > 0 && (p.ipLimit > 0 || p.pcLimit > 0)
}

func (p RegisterRateLimitPolicy) ipKey(ip string) string {
	if ip == "" {
		return ""
	}
	return fmt.Sprintf("rl:ip:register:%s", ip)
}

func (p RegisterRateLimitPolicy) pcKey(hash string) string {
	if hash == "" {
		return ""
	}
	return fmt.Sprintf("rl:pc:register:%s", hash)
}

// RegisterRateLimit enforces per-IP and per-pc counters for the
// registration endpoint. Registration codes are the real gate; the
// limiter just blunts brute force against them.
func RegisterRateLimit(policy RegisterRateLimitPolicy, store rateLimiterStore, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !policy.enabled() || store == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			ip := clientIP(r)
			if policy.ipLimit > 0 {
				if key := policy.ipKey(ip); key != "" {
					if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.ipLimit)); err != nil {
						responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
						return
					} else if !allowed {
						respondRateLimited(ctx, logg, w, policy, "ip", ip, "", count, policy.ipLimit)
						return
					}
				}
			}

			if policy.pcLimit > 0 {
				body, err := io.ReadAll(r.Body)
				if err != nil {
					responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read request"))
					return
				}
				r.Body = io.NopCloser(bytes.NewReader(body))

				pcID := strings.TrimSpace(extractPCUniqueID(body))
				if pcID != "" {
					hash := hashValue(pcID)
					if key := policy.pcKey(hash); key != "" {
						if allowed, count, err := allow(ctx, store, key, policy.window, int64(policy.pcLimit)); err != nil {
							responses.WriteError(ctx, nil, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rate limiting"))
							return
						} else if !allowed {
							respondRateLimited(ctx, logg, w, policy, "pc", "", hash, count, policy.pcLimit)
							return
						}
					}
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allow(ctx context.Context, store rateLimiterStore, key string, window time.Duration, limit int64) (bool, int64, error) {
	count, err := store.IncrWithTTL(ctx, key, window)
	if err != nil {
		return false, 0, err
	}
	return count <= limit, count, nil
}

func respondRateLimited(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, policy RegisterRateLimitPolicy, scope, ip, pcHash string, count int64, limit int) {
	if logg != nil {
		fields := map[string]any{
			"scope":          scope,
			"attempts":       count,
			"limit":          limit,
			"window_seconds": int(policy.window.Seconds()),
		}
		if ip != "" {
			fields["ip"] = ip
		}
		if pcHash != "" {
			fields["pc_hash"] = pcHash
		}
		logCtx := logg.WithFields(ctx, fields)
		logg.Warn(logCtx, "register.rate_limit.blocked")
	}
	err := pkgerrors.New(pkgerrors.CodeRateLimit, "rate limit exceeded")
	responses.WriteError(ctx, nil, w, err)
}

func clientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	if header := r.Header.Get("X-Forwarded-For"); header != "" {
		for _, part := range strings.Split(header, ",") {
			if ip := strings.TrimSpace(part); ip != "" {
				return ip
			}
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}

func extractPCUniqueID(payload []byte) string {
	var body struct {
		PCUniqueID string `json:"pc_unique_id"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return ""
	}
	return body.PCUniqueID
}

func hashValue(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
