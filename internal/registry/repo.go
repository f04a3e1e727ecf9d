package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// Repository handles store and bay persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to registry operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindStore loads a store by its external identifier.
func (r *Repository) FindStore(ctx context.Context, storeID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		First(&store).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// CreateStoreWithBays persists the store and its bay rows in one transaction.
func (r *Repository) CreateStoreWithBays(ctx context.Context, store *models.Store, bays []models.Bay) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(store).Error; err != nil {
			return err
		}
		for i := range bays {
			if bays[i].ID == uuid.Nil {
				bays[i].ID = uuid.New()
			}
		}
		if len(bays) == 0 {
			return nil
		}
		return tx.Create(&bays).Error
	})
}

// UpdateStoreWithBays saves the store and appends any new bay rows in one
// transaction.
func (r *Repository) UpdateStoreWithBays(ctx context.Context, store *models.Store, newBays []models.Bay) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(store).Error; err != nil {
			return err
		}
		for i := range newBays {
			if newBays[i].ID == uuid.Nil {
				newBays[i].ID = uuid.New()
			}
		}
		if len(newBays) == 0 {
			return nil
		}
		return tx.Create(&newBays).Error
	})
}

// ListBays returns all bay rows for the store, ordered by numeric bay id.
func (r *Repository) ListBays(ctx context.Context, storeID string) ([]models.Bay, error) {
	var bays []models.Bay
	if err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("CAST(bay_id AS INTEGER)").
		Find(&bays).Error; err != nil {
		return nil, err
	}
	return bays, nil
}

// FindBay loads one active bay by its canonical number.
func (r *Repository) FindBay(ctx context.Context, storeID, bayID string) (*models.Bay, error) {
	var bay models.Bay
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND bay_id = ? AND status = ?", storeID, bayID, enums.BayStatusActive).
		First(&bay).Error; err != nil {
		return nil, err
	}
	return &bay, nil
}
