package regcodes

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
)

// CodeDTO exposes a registration code row in admin responses. Code is the
// plaintext token; it is only meaningful while status is active.
type CodeDTO struct {
	ID        uuid.UUID  `json:"id"`
	Code      string     `json:"code"`
	Status    string     `json:"status"`
	IssuedBy  string     `json:"issued_by"`
	Notes     string     `json:"notes,omitempty"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// FromModel maps a persisted code into a DTO.
func FromModel(m *models.RegistrationCode) *CodeDTO {
	if m == nil {
		return nil
	}
	return &CodeDTO{
		ID:        m.ID,
		Code:      m.Code,
		Status:    m.Status.String(),
		IssuedBy:  m.IssuedBy,
		Notes:     m.Notes,
		RevokedAt: m.RevokedAt,
		CreatedAt: m.CreatedAt,
	}
}
