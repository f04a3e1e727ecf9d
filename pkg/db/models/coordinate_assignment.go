package models

import (
	"time"

	"github.com/google/uuid"
)

// CoordinateAssignment binds a bay to one catalogue template. At most one
// assignment exists per bay (ux_coordinate_assignments_bay); reassignment
// overwrites in place, last writer wins.
type CoordinateAssignment struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	StoreID    string    `gorm:"column:store_id;not null"`
	BayID      string    `gorm:"column:bay_id;not null"`
	TemplateID uuid.UUID `gorm:"column:template_id;type:uuid;not null"`
	AssignedAt time.Time `gorm:"column:assigned_at;not null"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
