package coordinates

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/types"
)

// Repository handles template and assignment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to coordinate operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateNextVersion reads the current max version for the (brand,
// resolution) pair and inserts version max+1 inside one transaction. Two
// concurrent uploads can both compute the same next version; the unique
// index rejects the loser, and the caller retries.
func (r *Repository) CreateNextVersion(ctx context.Context, brand, resolution string, payload types.RegionMap, filenameFor func(version int) string) (*models.CoordinateTemplate, error) {
	var tpl *models.CoordinateTemplate
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxVersion int
		if err := tx.Model(&models.CoordinateTemplate{}).
			Where("brand = ? AND resolution = ?", brand, resolution).
			Select("COALESCE(MAX(version), 0)").
			Scan(&maxVersion).Error; err != nil {
			return err
		}
		next := maxVersion + 1
		tpl = &models.CoordinateTemplate{
			ID:         uuid.New(),
			Brand:      brand,
			Resolution: resolution,
			Version:    next,
			Filename:   filenameFor(next),
			Payload:    payload,
		}
		return tx.Create(tpl).Error
	})
	if err != nil {
		return nil, err
	}
	return tpl, nil
}

// ListByBrand returns every template version for the brand, grouped by
// resolution with the newest version first.
func (r *Repository) ListByBrand(ctx context.Context, brand string) ([]models.CoordinateTemplate, error) {
	var rows []models.CoordinateTemplate
	if err := r.db.WithContext(ctx).
		Where("brand = ?", brand).
		Order("resolution ASC").
		Order("version DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByKey loads one template by its full catalogue key.
func (r *Repository) FindByKey(ctx context.Context, brand, resolution string, version int) (*models.CoordinateTemplate, error) {
	var tpl models.CoordinateTemplate
	if err := r.db.WithContext(ctx).
		Where("brand = ? AND resolution = ? AND version = ?", brand, resolution, version).
		First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// FindByFilename loads one template by its derived filename.
func (r *Repository) FindByFilename(ctx context.Context, filename string) (*models.CoordinateTemplate, error) {
	var tpl models.CoordinateTemplate
	if err := r.db.WithContext(ctx).
		Where("filename = ?", filename).
		First(&tpl).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// UpsertAssignment points the bay at the template, overwriting any prior
// assignment. Last writer wins.
func (r *Repository) UpsertAssignment(ctx context.Context, storeID, bayID string, templateID uuid.UUID) (*models.CoordinateAssignment, error) {
	assignment := &models.CoordinateAssignment{
		ID:         uuid.New(),
		StoreID:    storeID,
		BayID:      bayID,
		TemplateID: templateID,
		AssignedAt: time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "store_id"}, {Name: "bay_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"template_id": templateID,
			"assigned_at": assignment.AssignedAt,
		}),
	}).Create(assignment).Error
	if err != nil {
		return nil, err
	}
	return assignment, nil
}

// FindAssignment returns the bay's assigned template joined with its
// catalogue row, or gorm.ErrRecordNotFound when the bay is unconfigured.
func (r *Repository) FindAssignment(ctx context.Context, storeID, bayID string) (*models.CoordinateAssignment, *models.CoordinateTemplate, error) {
	var assignment models.CoordinateAssignment
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND bay_id = ?", storeID, bayID).
		First(&assignment).Error; err != nil {
		return nil, nil, err
	}

	var tpl models.CoordinateTemplate
	if err := r.db.WithContext(ctx).
		Where("id = ?", assignment.TemplateID).
		First(&tpl).Error; err != nil {
		return nil, nil, fmt.Errorf("assignment %s references missing template: %w", assignment.ID, err)
	}
	return &assignment, &tpl, nil
}
