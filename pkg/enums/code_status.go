package enums

import "fmt"

// CodeStatus maps to the registration_code_status enum in Postgres.
type CodeStatus string

const (
	CodeStatusActive  CodeStatus = "active"
	CodeStatusRevoked CodeStatus = "revoked"
)

var validCodeStatuses = []CodeStatus{
	CodeStatusActive,
	CodeStatusRevoked,
}

func (c CodeStatus) String() string {
	return string(c)
}

func (c CodeStatus) IsValid() bool {
	for _, candidate := range validCodeStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCodeStatus converts raw input into CodeStatus.
func ParseCodeStatus(value string) (CodeStatus, error) {
	for _, candidate := range validCodeStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid registration code status %q", value)
}
