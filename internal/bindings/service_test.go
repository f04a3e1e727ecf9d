package bindings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

type stubCodeValidator struct {
	err error
}

func (s stubCodeValidator) Validate(_ context.Context, _ string) (*regcodes.CodeDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &regcodes.CodeDTO{Code: "ABCD-EFGH-JKMN", Status: "active"}, nil
}

type stubBayResolver struct {
	bay *models.Bay
	err error
}

func (s stubBayResolver) ResolveBay(_ context.Context, _, _ string) (*models.Bay, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.bay, nil
}

type stubBindingRepo struct {
	active      *models.PCBinding
	registerErr error
	releaseErr  error
	registered  *models.PCBinding
	released    []string
}

func (s *stubBindingRepo) FindActiveByPC(_ context.Context, pcUniqueID string) (*models.PCBinding, error) {
	if s.active == nil || s.active.PCUniqueID != pcUniqueID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.active, nil
}

func (s *stubBindingRepo) RegisterExclusive(_ context.Context, pcUniqueID, storeID, bayID, bayName string) (*models.PCBinding, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	binding := &models.PCBinding{
		ID:           uuid.New(),
		PCUniqueID:   pcUniqueID,
		StoreID:      storeID,
		BayID:        &bayID,
		BayName:      bayName,
		Status:       enums.BindingStatusActive,
		RegisteredAt: time.Now().UTC(),
	}
	s.registered = binding
	return binding, nil
}

func (s *stubBindingRepo) Release(_ context.Context, pcUniqueID string) error {
	if s.releaseErr != nil {
		return s.releaseErr
	}
	s.released = append(s.released, pcUniqueID)
	return nil
}

func testBay() *models.Bay {
	return &models.Bay{
		ID:      uuid.New(),
		StoreID: "GANGNAM-01",
		BayID:   "3",
		BayName: "Bay 3",
		Status:  enums.BayStatusActive,
	}
}

func validInput() RegisterInput {
	return RegisterInput{
		RegistrationCode: "ABCD-EFGH-JKMN",
		PCUniqueID:       "PC-MAC-7788",
		StoreID:          "GANGNAM-01",
		BayNumber:        "03",
	}
}

func TestRegisterHappyPath(t *testing.T) {
	bay := testBay()
	repo := &stubBindingRepo{}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: bay}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.BayNumber != "3" {
		t.Fatalf("expected canonical bay number 3, got %s", dto.BayNumber)
	}
	if dto.BayID != bay.ID {
		t.Fatalf("expected bay row id %s, got %s", bay.ID, dto.BayID)
	}
	if dto.BayName != "Bay 3" {
		t.Fatalf("expected inherited bay name, got %s", dto.BayName)
	}
	if repo.registered == nil {
		t.Fatal("expected binding persisted")
	}
}

func TestRegisterInvalidCode(t *testing.T) {
	codeErr := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid registration code")
	repo := &stubBindingRepo{}
	svc, err := NewService(stubCodeValidator{err: codeErr}, stubBayResolver{bay: testBay()}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Register(context.Background(), validInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", gotErr)
	}
	if repo.registered != nil {
		t.Fatal("binding must not be created on invalid code")
	}
}

func TestRegisterUnknownBay(t *testing.T) {
	bayErr := pkgerrors.New(pkgerrors.CodeNotFound, "unknown bay")
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{err: bayErr}, &stubBindingRepo{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Register(context.Background(), validInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestRegisterIdempotentSameSlot(t *testing.T) {
	bay := testBay()
	bayID := bay.BayID
	existing := &models.PCBinding{
		ID:           uuid.New(),
		PCUniqueID:   "PC-MAC-7788",
		StoreID:      bay.StoreID,
		BayID:        &bayID,
		BayName:      "Bay 3",
		Status:       enums.BindingStatusActive,
		RegisteredAt: time.Now().UTC().Add(-time.Hour),
	}
	repo := &stubBindingRepo{active: existing}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: bay}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.BindingID != existing.ID {
		t.Fatal("expected the existing binding returned")
	}
	if repo.registered != nil {
		t.Fatal("idempotent re-registration must not insert a new row")
	}
}

func TestRegisterMovesToNewSlot(t *testing.T) {
	bay := testBay()
	oldBay := "7"
	existing := &models.PCBinding{
		ID:         uuid.New(),
		PCUniqueID: "PC-MAC-7788",
		StoreID:    bay.StoreID,
		BayID:      &oldBay,
		Status:     enums.BindingStatusActive,
	}
	repo := &stubBindingRepo{active: existing}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: bay}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Register(context.Background(), validInput())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if dto.BindingID == existing.ID {
		t.Fatal("expected a new binding for the new slot")
	}
	if repo.registered == nil || *repo.registered.BayID != "3" {
		t.Fatal("expected new binding on bay 3")
	}
}

func TestRegisterSlotConflict(t *testing.T) {
	conflictErr := errors.New(`duplicate key value violates unique constraint "ux_pc_bindings_active_slot"`)
	repo := &stubBindingRepo{registerErr: conflictErr}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: testBay()}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Register(context.Background(), validInput())
	typed := pkgerrors.As(gotErr)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", gotErr)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok || details["bay_number"] != "3" {
		t.Fatalf("expected conflict details naming the slot, got %v", typed.Details())
	}
}

func TestRegisterStorageFailure(t *testing.T) {
	repo := &stubBindingRepo{registerErr: errors.New("connection reset")}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: testBay()}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Register(context.Background(), validInput())
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency code, got %v", gotErr)
	}
	if !pkgerrors.Retryable(gotErr) {
		t.Fatal("storage failures should be retryable")
	}
}

func TestRegisterRequiresPCID(t *testing.T) {
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: testBay()}, &stubBindingRepo{}, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	input := validInput()
	input.PCUniqueID = "  "
	_, gotErr := svc.Register(context.Background(), input)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation code, got %v", gotErr)
	}
}

func TestDeregisterIsIdempotent(t *testing.T) {
	repo := &stubBindingRepo{}
	svc, err := NewService(stubCodeValidator{}, stubBayResolver{bay: testBay()}, repo, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := svc.Deregister(context.Background(), "PC-MAC-7788"); err != nil {
			t.Fatalf("deregister pass %d: %v", i, err)
		}
	}
	if len(repo.released) != 2 {
		t.Fatalf("expected 2 release calls, got %d", len(repo.released))
	}
}
