package registry

import (
	"regexp"
	"strings"

	pkgerrors "github.com/swingbaylabs/swingbay-backend/pkg/errors"
)

var (
	storeIDRe  = regexp.MustCompile(`^[A-Z0-9][A-Z0-9_-]*$`)
	digitRunRe = regexp.MustCompile(`[0-9]+`)
)

// NormalizeBayID canonicalizes a bay number into its de-padded decimal
// form: "03" and " 3 " both become "3". Bay numbers are positive
// integers, so "0", "000" and anything non-numeric are rejected. Every
// comparison, lookup and stored bay_id in the system goes through this
// single form.
func NormalizeBayID(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "bay number is required")
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "bay number must be a positive integer")
		}
	}
	depadded := strings.TrimLeft(trimmed, "0")
	if depadded == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "bay number must be a positive integer")
	}
	return depadded, nil
}

// BayIDFromName infers a canonical bay number from a free-form bay name
// such as "Bay 03" or "3번 타석". The inference is accepted only when the
// name contains exactly one digit run; two runs ("Bay 2 floor 3") are
// ambiguous and reported false.
func BayIDFromName(name string) (string, bool) {
	runs := digitRunRe.FindAllString(name, -1)
	if len(runs) != 1 {
		return "", false
	}
	normalized, err := NormalizeBayID(runs[0])
	if err != nil {
		return "", false
	}
	return normalized, true
}

// NormalizeStoreID canonicalizes the operator-facing store identifier:
// trimmed, uppercased, restricted to [A-Z0-9_-].
func NormalizeStoreID(raw string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if normalized == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "store id is required")
	}
	if !storeIDRe.MatchString(normalized) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "store id may only contain letters, digits, '-' and '_'")
	}
	return normalized, nil
}
