package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/api/middleware"
	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
)

type stubCodeService struct {
	code       *regcodes.CodeDTO
	codes      []regcodes.CodeDTO
	err        error
	lastIssuer string
	lastNotes  string
}

func (s *stubCodeService) Issue(ctx context.Context, issuedBy, notes string) (*regcodes.CodeDTO, error) {
	s.lastIssuer = issuedBy
	s.lastNotes = notes
	if s.err != nil {
		return nil, s.err
	}
	return s.code, nil
}

func (s *stubCodeService) Validate(ctx context.Context, code string) (*regcodes.CodeDTO, error) {
	return s.code, s.err
}

func (s *stubCodeService) List(ctx context.Context) ([]regcodes.CodeDTO, error) {
	return s.codes, s.err
}

func TestAdminCodeIssueUsesOperatorFromContext(t *testing.T) {
	svc := &stubCodeService{code: &regcodes.CodeDTO{ID: uuid.New(), Code: "AAAA-BBBB-CCCC", Status: "active"}}
	handler := AdminCodeIssue(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/registration_codes", bytes.NewReader([]byte(`{"notes":"rollout batch 2"}`)))
	req = req.WithContext(middleware.WithAdminUsername(req.Context(), "ops"))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastIssuer != "ops" {
		t.Fatalf("expected issuer from context, got %q", svc.lastIssuer)
	}
	if svc.lastNotes != "rollout batch 2" {
		t.Fatalf("unexpected notes %q", svc.lastNotes)
	}

	var envelope struct {
		Data regcodes.CodeDTO `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Code != "AAAA-BBBB-CCCC" {
		t.Fatalf("unexpected code %s", envelope.Data.Code)
	}
}

func TestAdminCodeList(t *testing.T) {
	svc := &stubCodeService{codes: []regcodes.CodeDTO{
		{ID: uuid.New(), Code: "AAAA-BBBB-CCCC", Status: "active"},
		{ID: uuid.New(), Code: "DDDD-EEEE-FFFF", Status: "revoked"},
	}}
	handler := AdminCodeList(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/registration_codes", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var envelope struct {
		Data struct {
			Codes []regcodes.CodeDTO `json:"codes"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data.Codes) != 2 {
		t.Fatalf("expected 2 codes, got %d", len(envelope.Data.Codes))
	}
}
