package hhsav

import (
	"strings"
	"unicode"
)

// MaskType represents a known data format with masking rules.
type MaskType string

const (
	MaskIBAN  MaskType = "iban"  // GB82WEST12345698765432 -> GB82**************5432
	MaskName  MaskType = "name"  // John Smith -> J*** S****
	MaskCard  MaskType = "card"  // 4111111111111111 -> ************1111
	MaskEmail MaskType = "email" // alice@example.com -> a***@example.com
	MaskUUID  MaskType = "uuid"  // 550e8400-e29b-... -> 550e8400-****-****-****-************
)

// Masker applies content-aware masking.
type Masker interface {
	// Mask applies masking to the value.
	Mask(value string) string
}

// MaskerFunc adapts a plain function to the Masker interface.
type MaskerFunc func(value string) string

// Mask calls f(value).
func (f MaskerFunc) Mask(value string) string { return f(value) }

// ibanMasker keeps the country code, check digits, and the last four
// characters. Grouping spaces are dropped.
type ibanMasker struct{}

// IBANMasker returns a masker for IBANs.
func IBANMasker() Masker {
	return &ibanMasker{}
}

func (m *ibanMasker) Mask(value string) string {
	compact := []rune(strings.ReplaceAll(value, " ", ""))
	if len(compact) <= 8 {
		return strings.Repeat("*", len(compact))
	}
	return string(compact[:4]) + strings.Repeat("*", len(compact)-8) + string(compact[len(compact)-4:])
}

// nameMasker keeps the first letter of each word.
type nameMasker struct{}

// NameMasker returns a masker for account holder names.
func NameMasker() Masker {
	return &nameMasker{}
}

func (m *nameMasker) Mask(value string) string {
	words := strings.Fields(value)
	for i, word := range words {
		runes := []rune(word)
		words[i] = string(runes[0]) + strings.Repeat("*", len(runes)-1)
	}
	return strings.Join(words, " ")
}

// cardMasker keeps the last four digits.
type cardMasker struct{}

// CardMasker returns a masker for card numbers.
func CardMasker() Masker {
	return &cardMasker{}
}

func (m *cardMasker) Mask(value string) string {
	digits := extractDigits(value)
	if len(digits) < 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// extractDigits returns only the digit characters from a string.
func extractDigits(s string) string {
	var digits strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}

// emailMasker keeps the first character of the local part and the domain.
type emailMasker struct{}

// EmailMasker returns a masker for email addresses.
func EmailMasker() Masker {
	return &emailMasker{}
}

func (m *emailMasker) Mask(value string) string {
	at := strings.LastIndex(value, "@")
	if at < 1 {
		return strings.Repeat("*", len(value))
	}
	return value[:1] + "***" + value[at:]
}

// uuidMasker keeps the first segment of a UUID.
type uuidMasker struct{}

// UUIDMasker returns a masker for UUIDs.
func UUIDMasker() Masker {
	return &uuidMasker{}
}

func (m *uuidMasker) Mask(value string) string {
	parts := strings.Split(value, "-")
	if len(parts) != 5 {
		return strings.Repeat("*", len(value))
	}
	return parts[0] + "-****-****-****-************"
}

// builtinMaskers returns the default masker registry.
func builtinMaskers() map[MaskType]Masker {
	return map[MaskType]Masker{
		MaskIBAN:  IBANMasker(),
		MaskName:  NameMasker(),
		MaskCard:  CardMasker(),
		MaskEmail: EmailMasker(),
		MaskUUID:  UUIDMasker(),
	}
}

// validMaskTypes contains all valid mask types for tag validation.
var validMaskTypes = map[MaskType]bool{
	MaskIBAN:  true,
	MaskName:  true,
	MaskCard:  true,
	MaskEmail: true,
	MaskUUID:  true,
}

// IsValidMaskType returns true if the type is a known mask type.
func IsValidMaskType(mt MaskType) bool {
	return validMaskTypes[mt]
}
