// Package adminauth authenticates the operator credential that gates
// code issuance, catalogue writes and normalizer runs.
package adminauth

import (
	"context"
	"fmt"
	"strings"
	"time"

	pkgauth "github.com/swingbaylabs/swingbay-backend/pkg/auth"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/security"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
}

type service struct {
	admin config.AdminConfig
	jwt   config.JWTConfig
	now   func() time.Time
}

func NewService(admin config.AdminConfig, jwt config.JWTConfig) (Service, error) {
	if admin.Username == "" || admin.PasswordHash == "" {
		return nil, fmt.Errorf("admin credential is not configured")
	}
	return &service{admin: admin, jwt: jwt, now: time.Now}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username and password are required")
	}

	// Verify the hash even for unknown usernames so both rejections
	// take comparable time.
	ok, err := security.VerifyPassword(req.Password, s.admin.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify credential")
	}
	if !ok || !strings.EqualFold(username, s.admin.Username) {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	now := s.now()
	token, err := pkgauth.MintAdminToken(s.jwt, now, pkgauth.AdminTokenPayload{Username: s.admin.Username})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint token")
	}

	return &LoginResponse{
		AccessToken: token,
		ExpiresAt:   now.Add(time.Duration(s.jwt.ExpirationMinutes) * time.Minute),
	}, nil
}
