package coordinates

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
	"github.com/swingbaylabs/swingbay-backend/pkg/db/types"
)

// UploadInput carries a new calibration template version.
type UploadInput struct {
	Brand      string
	Resolution string
	Payload    types.RegionMap
}

// TemplateDTO is the full template including its region payload.
type TemplateDTO struct {
	ID         uuid.UUID       `json:"id"`
	Brand      string          `json:"brand"`
	Resolution string          `json:"resolution"`
	Version    int             `json:"version"`
	Filename   string          `json:"filename"`
	Payload    types.RegionMap `json:"payload"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TemplateSummaryDTO is one row of a brand listing; payloads stay out of
// listings.
type TemplateSummaryDTO struct {
	Brand      string    `json:"brand"`
	Resolution string    `json:"resolution"`
	Version    int       `json:"version"`
	Filename   string    `json:"filename"`
	CreatedAt  time.Time `json:"created_at"`
}

// AssignInput selects a template for a bay, either by explicit
// (brand, resolution, version) or by catalogue filename.
type AssignInput struct {
	StoreID    string
	BayNumber  string
	Brand      string
	Resolution string
	Version    int
	Filename   string
}

// AssignmentDTO identifies the template currently assigned to a bay.
type AssignmentDTO struct {
	Brand      string    `json:"brand"`
	Resolution string    `json:"resolution"`
	Version    int       `json:"version"`
	Filename   string    `json:"filename"`
	AssignedAt time.Time `json:"assigned_at"`
}

func templateFromModel(m *models.CoordinateTemplate) *TemplateDTO {
	if m == nil {
		return nil
	}
	return &TemplateDTO{
		ID:         m.ID,
		Brand:      m.Brand,
		Resolution: m.Resolution,
		Version:    m.Version,
		Filename:   m.Filename,
		Payload:    m.Payload,
		CreatedAt:  m.CreatedAt,
	}
}

func summaryFromModel(m *models.CoordinateTemplate) TemplateSummaryDTO {
	return TemplateSummaryDTO{
		Brand:      m.Brand,
		Resolution: m.Resolution,
		Version:    m.Version,
		Filename:   m.Filename,
		CreatedAt:  m.CreatedAt,
	}
}
