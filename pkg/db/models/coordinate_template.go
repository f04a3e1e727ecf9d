package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/types"
)

// CoordinateTemplate is one immutable version of a calibration template for
// a (brand, resolution) pair. Version is monotonically increasing per pair;
// re-uploads create a new version, never overwrite.
type CoordinateTemplate struct {
	ID         uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Brand      string          `gorm:"column:brand;not null"`
	Resolution string          `gorm:"column:resolution;not null"`
	Version    int             `gorm:"column:version;not null"`
	Filename   string          `gorm:"column:filename;not null"`
	Payload    types.RegionMap `gorm:"column:payload;type:jsonb;not null"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
}
