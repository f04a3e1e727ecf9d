package enums

import "fmt"

// BindingStatus maps to the binding_status enum in Postgres.
type BindingStatus string

const (
	BindingStatusPending  BindingStatus = "pending"
	BindingStatusActive   BindingStatus = "active"
	BindingStatusInactive BindingStatus = "inactive"
)

var validBindingStatuses = []BindingStatus{
	BindingStatusPending,
	BindingStatusActive,
	BindingStatusInactive,
}

// String implements fmt.Stringer.
func (b BindingStatus) String() string {
	return string(b)
}

// IsValid reports whether the value matches the canonical binding_status enum.
func (b BindingStatus) IsValid() bool {
	for _, candidate := range validBindingStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBindingStatus converts raw input into BindingStatus.
func ParseBindingStatus(value string) (BindingStatus, error) {
	for _, candidate := range validBindingStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid binding status %q", value)
}
