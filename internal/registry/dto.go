package registry

import (
	"time"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
)

// StoreDTO exposes store data in API responses.
type StoreDTO struct {
	StoreID   string    `json:"store_id"`
	StoreName string    `json:"store_name"`
	BaysCount int       `json:"bays_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BayDTO is one bay row in a store listing. Assigned reflects whether an
// active PC binding currently occupies the slot.
type BayDTO struct {
	BayNumber string `json:"bay_number"`
	BayName   string `json:"bay_name"`
	BayCode   string `json:"bay_code"`
	Status    string `json:"status"`
	Assigned  bool   `json:"assigned"`
}

// BayListDTO is the response shape for a store's bay listing.
type BayListDTO struct {
	StoreID   string   `json:"store_id"`
	BaysCount int      `json:"bays_count"`
	Bays      []BayDTO `json:"bays"`
}

// CreateStoreInput captures the fields required to provision a store.
type CreateStoreInput struct {
	StoreID   string
	StoreName string
	BaysCount int
}

// UpdateStoreInput captures the mutable store fields.
type UpdateStoreInput struct {
	StoreName *string
	BaysCount *int
}

// FromStoreModel maps the persisted store into a DTO.
func FromStoreModel(m *models.Store) *StoreDTO {
	if m == nil {
		return nil
	}
	return &StoreDTO{
		StoreID:   m.StoreID,
		StoreName: m.StoreName,
		BaysCount: m.BaysCount,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
