package bindings

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// Repository handles PC binding persistence. Slot exclusivity lives in the
// partial unique indexes, not here; the repo only choreographs transactions
// so a violation surfaces as the driver's unique-constraint error.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to binding operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByPC returns the PC's current active binding, if any.
func (r *Repository) FindActiveByPC(ctx context.Context, pcUniqueID string) (*models.PCBinding, error) {
	var binding models.PCBinding
	if err := r.db.WithContext(ctx).
		Where("pc_unique_id = ? AND status = ?", pcUniqueID, enums.BindingStatusActive).
		First(&binding).Error; err != nil {
		return nil, err
	}
	return &binding, nil
}

// RegisterExclusive retires the PC's previous active binding (if any) and
// inserts the new one in a single transaction. Because the PC's own row is
// retired first, the only unique index a concurrent insert can trip is the
// active-slot one, which the caller maps to a conflict.
func (r *Repository) RegisterExclusive(ctx context.Context, pcUniqueID, storeID, bayID, bayName string) (*models.PCBinding, error) {
	binding := &models.PCBinding{
		ID:           uuid.New(),
		PCUniqueID:   pcUniqueID,
		StoreID:      storeID,
		BayID:        &bayID,
		BayName:      bayName,
		Status:       enums.BindingStatusActive,
		RegisteredAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := tx.Model(&models.PCBinding{}).
			Where("pc_unique_id = ? AND status = ?", pcUniqueID, enums.BindingStatusActive).
			Updates(map[string]any{"status": enums.BindingStatusInactive, "released_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(binding).Error
	})
	if err != nil {
		return nil, err
	}
	return binding, nil
}

// Release retires the PC's active binding. Releasing a PC with no active
// binding is a no-op.
func (r *Repository) Release(ctx context.Context, pcUniqueID string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&models.PCBinding{}).
		Where("pc_unique_id = ? AND status = ?", pcUniqueID, enums.BindingStatusActive).
		Updates(map[string]any{"status": enums.BindingStatusInactive, "released_at": now}).Error
}

// ActiveBayIDs returns the set of bay numbers currently occupied by an
// active binding in the store.
func (r *Repository) ActiveBayIDs(ctx context.Context, storeID string) (map[string]bool, error) {
	var bayIDs []string
	if err := r.db.WithContext(ctx).Model(&models.PCBinding{}).
		Where("store_id = ? AND status = ? AND bay_id IS NOT NULL", storeID, enums.BindingStatusActive).
		Pluck("bay_id", &bayIDs).Error; err != nil {
		return nil, err
	}
	occupied := make(map[string]bool, len(bayIDs))
	for _, id := range bayIDs {
		occupied[id] = true
	}
	return occupied, nil
}
