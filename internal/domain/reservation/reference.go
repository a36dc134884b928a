package reservation

import (
	"crypto/rand"
	"errors"
	"regexp"
	"strings"
)

const (
	// ReferencePrefix is the fixed human-readable booking prefix shown to guests.
	ReferencePrefix = "RSV-"

	referenceSuffixLen = 8
	// No 0/O/1/I/L to keep references readable over the phone.
	referenceAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
)

var (
	ErrInvalidReference = errors.New("invalid reservation reference")

	referencePattern = regexp.MustCompile(`^RSV-[A-Z2-9]{8}$`)
)

// NewReference generates a booking reference like RSV-7KQX2MWP. Collisions
// are negligible but not impossible; the store enforces uniqueness.
func NewReference() (string, error) {
	buf := make([]byte, referenceSuffixLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	var b strings.Builder
	b.WriteString(ReferencePrefix)
	for _, c := range buf {
		b.WriteByte(referenceAlphabet[int(c)%len(referenceAlphabet)])
	}
	return b.String(), nil
}

func ValidateReference(ref string) error {
	if !referencePattern.MatchString(ref) {
		return ErrInvalidReference
	}
	return nil
}
