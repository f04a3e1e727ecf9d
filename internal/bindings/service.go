package bindings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/internal/regcodes"
	"github.com/swingbaylabs/swingbay-backend/internal/registry"
	"github.com/swingbaylabs/swingbay-backend/pkg/db"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
	"github.com/swingbaylabs/swingbay-backend/pkg/metrics"
)

const slotIndexName = "ux_pc_bindings_active_slot"

type codeValidator interface {
	Validate(ctx context.Context, code string) (*regcodes.CodeDTO, error)
}

type bayResolver interface {
	ResolveBay(ctx context.Context, storeID, bayNumber string) (*models.Bay, error)
}

type bindingRepository interface {
	FindActiveByPC(ctx context.Context, pcUniqueID string) (*models.PCBinding, error)
	RegisterExclusive(ctx context.Context, pcUniqueID, storeID, bayID, bayName string) (*models.PCBinding, error)
	Release(ctx context.Context, pcUniqueID string) error
}

// Service coordinates PC-to-bay registration.
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*BindingDTO, error)
	Deregister(ctx context.Context, pcUniqueID string) error
}

type service struct {
	codes    codeValidator
	registry bayResolver
	repo     bindingRepository
	metrics  *metrics.RegistrationMetrics
}

// NewService builds the registration coordinator.
func NewService(codes codeValidator, reg bayResolver, repo bindingRepository, regMetrics *metrics.RegistrationMetrics) (Service, error) {
	if codes == nil {
		return nil, fmt.Errorf("code validator required")
	}
	if reg == nil {
		return nil, fmt.Errorf("bay resolver required")
	}
	if repo == nil {
		return nil, fmt.Errorf("binding repository required")
	}
	return &service{codes: codes, registry: reg, repo: repo, metrics: regMetrics}, nil
}

// Register admits a bay PC into a slot. The admission code gates entry, the
// store and bay must exist, and the storage-level slot index is the sole
// arbiter of exclusivity: no pre-check decides the outcome.
func (s *service) Register(ctx context.Context, input RegisterInput) (*BindingDTO, error) {
	pcID := strings.TrimSpace(input.PCUniqueID)
	if pcID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pc unique id is required")
	}

	if _, err := s.codes.Validate(ctx, input.RegistrationCode); err != nil {
		if typed := pkgerrors.As(err); typed != nil && typed.Code() == pkgerrors.CodeUnauthorized {
			s.metrics.IncInvalidCode()
		}
		return nil, err
	}

	bay, err := s.registry.ResolveBay(ctx, input.StoreID, input.BayNumber)
	if err != nil {
		return nil, err
	}

	bayName := strings.TrimSpace(input.BayName)
	if bayName == "" {
		bayName = bay.BayName
	}

	// Re-registering the same PC to the slot it already holds returns the
	// existing binding untouched.
	existing, err := s.repo.FindActiveByPC(ctx, pcID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load current binding")
	}
	if existing != nil && existing.StoreID == bay.StoreID &&
		existing.BayID != nil && *existing.BayID == bay.BayID {
		return fromModel(existing, bay.ID), nil
	}

	binding, err := s.repo.RegisterExclusive(ctx, pcID, bay.StoreID, bay.BayID, bayName)
	if err != nil {
		if db.IsUniqueViolation(err, slotIndexName) {
			s.metrics.IncConflict()
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "bay is already registered to another pc").
				WithDetails(map[string]string{
					"store_id":   bay.StoreID,
					"bay_number": bay.BayID,
				})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "register binding")
	}

	s.metrics.IncRegistered()
	return fromModel(binding, bay.ID), nil
}

// Deregister releases whatever binding the PC holds. Unknown PCs succeed.
func (s *service) Deregister(ctx context.Context, pcUniqueID string) error {
	pcID := strings.TrimSpace(pcUniqueID)
	if pcID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "pc unique id is required")
	}
	if err := s.repo.Release(ctx, pcID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "release binding")
	}
	return nil
}

var _ bayResolver = (registry.Service)(nil)
