package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// PCBinding associates a bay PC's hardware identity with a (store, bay)
// slot. Slot exclusivity is owned by the storage layer: the partial unique
// index ux_pc_bindings_active_slot admits at most one active row per
// (store_id, bay_id), and ux_pc_bindings_active_pc at most one active row
// per pc_unique_id. BayID is nullable because historical rows predate the
// NOT-NULL tightening performed by the normalizer.
type PCBinding struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PCUniqueID   string              `gorm:"column:pc_unique_id;not null;index"`
	StoreID      string              `gorm:"column:store_id;not null"`
	BayID        *string             `gorm:"column:bay_id"`
	BayName      string              `gorm:"column:bay_name"`
	Status       enums.BindingStatus `gorm:"column:status;type:binding_status;not null;default:'pending'"`
	RegisteredAt time.Time           `gorm:"column:registered_at;not null"`
	ReleasedAt   *time.Time          `gorm:"column:released_at"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
