package security

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// Admission codes avoid ambiguous characters (0/O, 1/I/L) so operators can
// read them over the phone.
var codeCharset = []rune("ABCDEFGHJKMNPQRSTUVWXYZ23456789")

const codeGroupSize = 4

// GenerateRegistrationCode produces a random admission code of the requested
// length, grouped with dashes every four characters (e.g. "K3QF-7WMP-XR2N").
func GenerateRegistrationCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be positive")
	}

	raw := make([]rune, length)
	for i := 0; i < length; i++ {
		idx, err := randInt(len(codeCharset))
		if err != nil {
			return "", err
		}
		raw[i] = codeCharset[idx]
	}

	var b strings.Builder
	for i, r := range raw {
		if i > 0 && i%codeGroupSize == 0 {
			b.WriteRune('-')
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

// randInt returns an unbiased random index in [0, max).
func randInt(max int) (int, error) {
	if max <= 0 {
		return 0, fmt.Errorf("max must be positive")
	}
	limit := 256 - (256 % max)
	buf := make([]byte, 1)
	for {
		if _, err := rand.Read(buf); err != nil {
			return 0, fmt.Errorf("read random byte: %w", err)
		}
		if int(buf[0]) < limit {
			return int(buf[0]) % max, nil
		}
	}
}
