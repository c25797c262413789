package fiscal

import (
	"fmt"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

const cepLen = 8

// CheckCEP accepts any 8-digit postal code whose digits are not all equal.
// There is no registry lookup.
func CheckCEP(value string) error {
	c := digits.OnlyDigits(value)
	if len(c) != cepLen {
		return fmt.Errorf("CEP %q has %d digits, want %d: %w", value, len(c), cepLen, domain.ErrLengthMismatch)
	}
	if digits.AllSame(c) {
		return fmt.Errorf("CEP %q has all digits equal: %w", value, domain.ErrInvalidFormat)
	}
	return nil
}

// CheckCEPStrict is CheckCEP without mask stripping.
func CheckCEPStrict(value string) error {
	if len(value) != cepLen || !digits.IsDigits(value) {
		return fmt.Errorf("CEP %q is not 8 bare digits: %w", value, domain.ErrLengthMismatch)
	}
	return CheckCEP(value)
}

// ValidateCEP reports whether value is an acceptable CEP.
func ValidateCEP(value string) bool { return CheckCEP(value) == nil }

// FormatCEP renders NNNNN-NNN, or returns value unchanged when invalid.
func FormatCEP(value string) string {
	if !ValidateCEP(value) {
		return value
	}
	c := digits.OnlyDigits(value)
	return c[:5] + "-" + c[5:]
}

// FormatZipcode formats Brazilian postal codes with 8 digits and leaves every
// other country untouched.
func FormatZipcode(zipcode, countryCode string) string {
	if zipcode == "" || !strings.EqualFold(countryCode, "BR") {
		return zipcode
	}
	c := digits.OnlyDigits(zipcode)
	if len(c) != cepLen {
		return zipcode
	}
	return c[:5] + "-" + c[5:]
}
