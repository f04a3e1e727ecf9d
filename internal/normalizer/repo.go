package normalizer

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
)

// Repository gives the normalizer raw access to binding rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to normalizer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListBindings returns every binding row, optionally restricted to one
// store. The scan covers historical rows too: a null bay_id anywhere blocks
// the NOT-NULL tightening.
func (r *Repository) ListBindings(ctx context.Context, storeID string) ([]models.PCBinding, error) {
	query := r.db.WithContext(ctx).Model(&models.PCBinding{}).Order("created_at ASC")
	if storeID != "" {
		query = query.Where("store_id = ?", storeID)
	}
	var rows []models.PCBinding
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ApplyBayIDs writes the proposed canonical bay_ids in one transaction.
func (r *Repository) ApplyBayIDs(ctx context.Context, updates map[uuid.UUID]string) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for id, bayID := range updates {
			if err := tx.Model(&models.PCBinding{}).
				Where("id = ?", id).
				Update("bay_id", bayID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// TightenBayIDNotNull promotes the nullable bay_id column to NOT NULL.
// Only meaningful on Postgres; re-running it is harmless.
func (r *Repository) TightenBayIDNotNull(ctx context.Context) error {
	if r.db.Dialector.Name() != "postgres" {
		return nil
	}
	return r.db.WithContext(ctx).
		Exec(`ALTER TABLE pc_bindings ALTER COLUMN bay_id SET NOT NULL`).Error
}
