package normalizer

import "github.com/google/uuid"

// FindingClass labels one problem row discovered by a scan.
type FindingClass string

const (
	// FindingZeroPadded marks a bay_id stored in a non-canonical form
	// such as "03".
	FindingZeroPadded FindingClass = "zero_padded"
	// FindingNullBayID marks a row whose bay_id was never populated.
	FindingNullBayID FindingClass = "null_bay_id"
	// FindingDuplicateSlot marks active rows that collapse onto the same
	// canonical slot. These are never auto-resolved.
	FindingDuplicateSlot FindingClass = "duplicate_slot"
)

// Finding describes one binding row needing attention.
type Finding struct {
	BindingID     uuid.UUID    `json:"binding_id"`
	PCUniqueID    string       `json:"pc_unique_id"`
	StoreID       string       `json:"store_id"`
	Class         FindingClass `json:"class"`
	CurrentBayID  *string      `json:"current_bay_id,omitempty"`
	ProposedBayID string       `json:"proposed_bay_id,omitempty"`
	BayName       string       `json:"bay_name,omitempty"`
	// ConflictsWith lists the other binding ids sharing the slot for
	// duplicate_slot findings, so an operator can pick the survivor.
	ConflictsWith []uuid.UUID `json:"conflicts_with,omitempty"`
	// Inferable reports whether a null bay_id has an unambiguous proposal.
	Inferable bool `json:"inferable,omitempty"`
	// Active marks findings on rows that participate in slot exclusivity.
	Active bool `json:"active,omitempty"`
}

// ScanReport summarizes one pass over the binding fleet.
type ScanReport struct {
	StoreID    string    `json:"store_id,omitempty"`
	Total      int       `json:"total"`
	OK         int       `json:"ok"`
	ZeroPadded int       `json:"zero_padded"`
	NullBayID  int       `json:"null_bay_id"`
	Duplicates int       `json:"duplicate_slot"`
	Findings   []Finding `json:"findings,omitempty"`
}

// Clean reports whether the fleet needs no repair and the storage
// constraint can be tightened.
func (r *ScanReport) Clean() bool {
	return r.ZeroPadded == 0 && r.NullBayID == 0 && r.Duplicates == 0
}

// RepairInput controls a repair pass.
type RepairInput struct {
	// StoreID restricts the pass to one store; empty means the whole fleet.
	StoreID string
	// DryRun computes the repair plan without writing anything.
	DryRun bool
}

// RepairReport summarizes what a repair pass did (or would do, for a dry
// run).
type RepairReport struct {
	DryRun              bool      `json:"dry_run"`
	Depadded            int       `json:"depadded"`
	Inferred            int       `json:"inferred"`
	Unresolved          []Finding `json:"unresolved,omitempty"`
	ConstraintTightened bool      `json:"constraint_tightened"`
	After               ScanReport `json:"after"`
}
