package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/internal/bindings"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type stubBindingsService struct {
	binding   *bindings.BindingDTO
	err       error
	lastInput bindings.RegisterInput
	deregs    []string
}

func (s *stubBindingsService) Register(ctx context.Context, input bindings.RegisterInput) (*bindings.BindingDTO, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return s.binding, nil
}

func (s *stubBindingsService) Deregister(ctx context.Context, pcUniqueID string) error {
	s.deregs = append(s.deregs, pcUniqueID)
	return s.err
}

func registerBody() []byte {
	return []byte(`{
		"registration_code": "AAAA-BBBB-CCCC",
		"pc_unique_id": "PC-001",
		"store_id": "GANGNAM-01",
		"bay_number": "3",
		"bay_name": "Bay 3"
	}`)
}

func TestPCRegisterSuccess(t *testing.T) {
	svc := &stubBindingsService{binding: &bindings.BindingDTO{
		BindingID:    uuid.New(),
		BayID:        uuid.New(),
		StoreID:      "GANGNAM-01",
		BayNumber:    "3",
		BayName:      "Bay 3",
		RegisteredAt: time.Now(),
	}}
	handler := PCRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pcs/register", bytes.NewReader(registerBody()))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastInput.PCUniqueID != "PC-001" || svc.lastInput.BayNumber != "3" {
		t.Fatalf("unexpected service input %+v", svc.lastInput)
	}

	var envelope struct {
		Data struct {
			BayNumber string `json:"bay_number"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.BayNumber != "3" {
		t.Fatalf("unexpected bay number %s", envelope.Data.BayNumber)
	}
}

func TestPCRegisterSlotConflict(t *testing.T) {
	svc := &stubBindingsService{err: pkgerrors.New(pkgerrors.CodeConflict, "bay is already registered to another pc").
		WithDetails(map[string]any{"store_id": "GANGNAM-01", "bay_number": "3"})}
	handler := PCRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pcs/register", bytes.NewReader(registerBody()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Code    string         `json:"code"`
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected code %s", envelope.Error.Code)
	}
	if envelope.Error.Details["bay_number"] != "3" {
		t.Fatalf("expected conflicting slot in details, got %v", envelope.Error.Details)
	}
}

func TestPCRegisterInvalidCode(t *testing.T) {
	svc := &stubBindingsService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid registration code")}
	handler := PCRegister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pcs/register", bytes.NewReader(registerBody()))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestPCRegisterRejectsMissingFields(t *testing.T) {
	handler := PCRegister(&stubBindingsService{}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pcs/register", bytes.NewReader([]byte(`{"pc_unique_id":"PC-001"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestPCDeregister(t *testing.T) {
	svc := &stubBindingsService{}
	handler := PCDeregister(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pcs/deregister", bytes.NewReader([]byte(`{"pc_unique_id":"PC-001"}`)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if len(svc.deregs) != 1 || svc.deregs[0] != "PC-001" {
		t.Fatalf("unexpected deregister calls %v", svc.deregs)
	}
}
