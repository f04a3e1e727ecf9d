package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// Bay is a hitting station within a store. BayID is the canonical,
// de-padded decimal string ("3", never "03"); uniqueness among active bays
// is enforced by the partial index ux_bays_active_number.
type Bay struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID   string          `gorm:"column:store_id;not null;index"`
	BayID     string          `gorm:"column:bay_id;not null"`
	BayName   string          `gorm:"column:bay_name;not null"`
	BayCode   string          `gorm:"column:bay_code;not null"`
	Status    enums.BayStatus `gorm:"column:status;type:bay_status;not null;default:'active'"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
