package enums

import "fmt"

// BayStatus maps to the bay_status enum in Postgres.
type BayStatus string

const (
	BayStatusActive   BayStatus = "active"
	BayStatusDisabled BayStatus = "disabled"
)

var validBayStatuses = []BayStatus{
	BayStatusActive,
	BayStatusDisabled,
}

func (b BayStatus) String() string {
	return string(b)
}

func (b BayStatus) IsValid() bool {
	for _, candidate := range validBayStatuses {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBayStatus converts raw input into BayStatus.
func ParseBayStatus(value string) (BayStatus, error) {
	for _, candidate := range validBayStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bay status %q", value)
}
