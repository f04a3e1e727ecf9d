package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/enums"
)

// RegistrationCode is a single-use admission token. Rows are never deleted;
// superseded codes move to status revoked so the full issuance history stays
// auditable. At most one row is active at any instant.
type RegistrationCode struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string           `gorm:"column:code;not null;unique"`
	Status    enums.CodeStatus `gorm:"column:status;type:registration_code_status;not null;default:'active'"`
	IssuedBy  string           `gorm:"column:issued_by;not null"`
	Notes     string           `gorm:"column:notes"`
	RevokedAt *time.Time       `gorm:"column:revoked_at"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}
