package controllers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/swingbaylabs/swingbay-backend/internal/adminauth"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type stubAdminAuthService struct {
	resp *adminauth.LoginResponse
	err  error
}

func (s stubAdminAuthService) Login(ctx context.Context, req adminauth.LoginRequest) (*adminauth.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func TestAdminAuthLoginSuccess(t *testing.T) {
	handler := AdminAuthLogin(stubAdminAuthService{resp: &adminauth.LoginResponse{AccessToken: "token"}}, nil)

	body := []byte(`{"username":"ops","password":"hunter2!"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
}

func TestAdminAuthLoginRejectsBadCredentials(t *testing.T) {
	handler := AdminAuthLogin(stubAdminAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}, nil)

	body := []byte(`{"username":"ops","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAdminAuthLoginRejectsMissingBody(t *testing.T) {
	handler := AdminAuthLogin(stubAdminAuthService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
