package bindings

import (
	"time"

	"github.com/google/uuid"

	"github.com/swingbaylabs/swingbay-backend/pkg/db/models"
)

// RegisterInput carries the registration request from a bay PC.
type RegisterInput struct {
	RegistrationCode string
	PCUniqueID       string
	StoreID          string
	BayNumber        string
	BayName          string
}

// BindingDTO is the registration response returned to the bay PC.
type BindingDTO struct {
	BindingID    uuid.UUID `json:"binding_id"`
	BayID        uuid.UUID `json:"bay_id"`
	StoreID      string    `json:"store_id"`
	BayNumber    string    `json:"bay_number"`
	BayName      string    `json:"bay_name"`
	RegisteredAt time.Time `json:"registered_at"`
}

func fromModel(binding *models.PCBinding, bayRowID uuid.UUID) *BindingDTO {
	if binding == nil {
		return nil
	}
	bayNumber := ""
	if binding.BayID != nil {
		bayNumber = *binding.BayID
	}
	return &BindingDTO{
		BindingID:    binding.ID,
		BayID:        bayRowID,
		StoreID:      binding.StoreID,
		BayNumber:    bayNumber,
		BayName:      binding.BayName,
		RegisteredAt: binding.RegisteredAt,
	}
}
