package regcodes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// Repository handles registration code persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to code operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Issue revokes every active code and inserts the new one inside a single
// transaction, so the at-most-one-active invariant never has a visible gap.
func (r *Repository) Issue(ctx context.Context, code, issuedBy, notes string) (*models.RegistrationCode, error) {
	row := &models.RegistrationCode{
		ID:       uuid.New(),
		Code:     code,
		Status:   enums.CodeStatusActive,
		IssuedBy: issuedBy,
		Notes:    notes,
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		if err := tx.Model(&models.RegistrationCode{}).
			Where("status = ?", enums.CodeStatusActive).
			Updates(map[string]any{"status": enums.CodeStatusRevoked, "revoked_at": now}).Error; err != nil {
			return err
		}
		return tx.Create(row).Error
	})
	if err != nil {
		return nil, err
	}
	return row, nil
}

// FindActiveByCode returns the active row matching the literal code value.
func (r *Repository) FindActiveByCode(ctx context.Context, code string) (*models.RegistrationCode, error) {
	var row models.RegistrationCode
	if err := r.db.WithContext(ctx).
		Where("code = ? AND status = ?", code, enums.CodeStatusActive).
		First(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns the full issuance history, newest first.
func (r *Repository) List(ctx context.Context) ([]models.RegistrationCode, error) {
	var rows []models.RegistrationCode
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
