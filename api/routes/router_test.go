package routes

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/swingbaylabs/swingbay-backend/internal/adminauth"
	"github.com/swingbaylabs/swingbay-backend/internal/bindings"
	"github.com/swingbaylabs/swingbay-backend/internal/coordinates"
	"github.com/swingbaylabs/swingbay-backend/internal/normalizer"
	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	pkgauth "github.com/swingbaylabs/swingbay-backend/pkg/auth"
	"github.com/swingbaylabs/swingbay-backend/pkg/config"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAdminAuth struct{}

func (stubAdminAuth) Login(ctx context.Context, req adminauth.LoginRequest) (*adminauth.LoginResponse, error) {
	return &adminauth.LoginResponse{AccessToken: "token"}, nil
}

type stubRegistry struct{}

func (stubRegistry) GetStore(ctx context.Context, storeID string) (*registry.StoreDTO, error) {
	return &registry.StoreDTO{StoreID: storeID, StoreName: "Test Store", BaysCount: 4}, nil
}

func (stubRegistry) ListBays(ctx context.Context, storeID string) (*registry.BayListDTO, error) {
	return &registry.BayListDTO{StoreID: storeID, BaysCount: 4}, nil
}

func (stubRegistry) CreateStore(ctx context.Context, input registry.CreateStoreInput) (*registry.StoreDTO, error) {
	return &registry.StoreDTO{StoreID: input.StoreID}, nil
}

func (stubRegistry) UpdateStore(ctx context.Context, storeID string, input registry.UpdateStoreInput) (*registry.StoreDTO, error) {
	return &registry.StoreDTO{StoreID: storeID}, nil
}

func (stubRegistry) ResolveBay(ctx context.Context, storeID, bayNumber string) (*models.Bay, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown bay")
}

type stubCodes struct{}

func (stubCodes) Issue(ctx context.Context, issuedBy, notes string) (*regcodes.CodeDTO, error) {
	return &regcodes.CodeDTO{Code: "AAAA-BBBB-CCCC", Status: "active"}, nil
}

func (stubCodes) Validate(ctx context.Context, code string) (*regcodes.CodeDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid registration code")
}

func (stubCodes) List(ctx context.Context) ([]regcodes.CodeDTO, error) {
	return nil, nil
}

type stubBindings struct{}

func (stubBindings) Register(ctx context.Context, input bindings.RegisterInput) (*bindings.BindingDTO, error) {
	return &bindings.BindingDTO{StoreID: input.StoreID, BayNumber: input.BayNumber}, nil
}

func (stubBindings) Deregister(ctx context.Context, pcUniqueID string) error { return nil }

type stubCatalog struct{}

func (stubCatalog) Upload(ctx context.Context, input coordinates.UploadInput) (*coordinates.TemplateDTO, error) {
	return &coordinates.TemplateDTO{Brand: input.Brand}, nil
}

func (stubCatalog) List(ctx context.Context, brand string) ([]coordinates.TemplateSummaryDTO, error) {
	return nil, nil
}

func (stubCatalog) Get(ctx context.Context, brand, resolution string, version int) (*coordinates.TemplateDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "unknown template")
}

type stubBinder struct{}

func (stubBinder) Assign(ctx context.Context, input coordinates.AssignInput) (*coordinates.AssignmentDTO, error) {
	return &coordinates.AssignmentDTO{}, nil
}

func (stubBinder) LookupForBay(ctx context.Context, storeID, bayNumber string) (*coordinates.AssignmentDTO, error) {
	return nil, nil
}

type stubNormalizer struct{}

func (stubNormalizer) Scan(ctx context.Context, storeID string) (*normalizer.ScanReport, error) {
	return &normalizer.ScanReport{}, nil
}

func (stubNormalizer) Repair(ctx context.Context, input normalizer.RepairInput) (*normalizer.RepairReport, error) {
	return &normalizer.RepairReport{DryRun: input.DryRun}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "8080"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "swingbay-test", ExpirationMinutes: 10},
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return NewRouter(
		testConfig(),
		nil,
		stubPinger{},
		nil,
		stubAdminAuth{},
		stubRegistry{},
		stubCodes{},
		stubBindings{},
		stubCatalog{},
		stubBinder{},
		stubNormalizer{},
	)
}

func TestRouterPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		body   []byte
		want   int
	}{
		{http.MethodGet, "/api/v1/ping", nil, http.StatusOK},
		{http.MethodGet, "/health/live", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/stores/GANGNAM-01", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/stores/GANGNAM-01/bays", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/stores/GANGNAM-01/bays/3/coordinates", nil, http.StatusOK},
		{http.MethodGet, "/api/v1/coordinates?brand=golfzon", nil, http.StatusOK},
		{http.MethodPost, "/api/v1/pcs/register", []byte(`{"registration_code":"AAAA-BBBB-CCCC","pc_unique_id":"PC-001","store_id":"GANGNAM-01","bay_number":"3"}`), http.StatusOK},
		{http.MethodPost, "/api/v1/pcs/deregister", []byte(`{"pc_unique_id":"PC-001"}`), http.StatusOK},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader(tc.body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d got %d: %s", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestRouterAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/v1/ping"},
		{http.MethodPost, "/api/admin/v1/registration_codes/"},
		{http.MethodPost, "/api/admin/v1/stores/"},
		{http.MethodPost, "/api/admin/v1/coordinates/"},
		{http.MethodPost, "/api/admin/v1/normalizer/scan"},
	}

	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, bytes.NewReader([]byte(`{}`)))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401 got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouterAdminRoutesAcceptValidToken(t *testing.T) {
	router := newTestRouter(t)

	cfg := testConfig()
	token, err := pkgauth.MintAdminToken(cfg.JWT, time.Now(), pkgauth.AdminTokenPayload{Username: "ops"})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouterLoginIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/auth/login", bytes.NewReader([]byte(`{"username":"ops","password":"hunter2!"}`)))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
}
