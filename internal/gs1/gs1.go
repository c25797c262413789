// Package gs1 validates and generates GS1 identification keys: GTIN-8/12/13/14,
// SSCC and GSIN. All of them share the alternating 3/1 weighted mod-10 digit.
package gs1

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

const (
	GTINMinLength = 8
	GTINLength    = 14
	SSCCLength    = 18
	GSINLength    = 17
)

// CheckDigit computes the mod-10 check digit for data, weighting the
// rightmost digit by 3 and alternating with 1 to the left. data must hold
// digits only.
func CheckDigit(data string) int {
	sum := 0
	w := 3
	for i := len(data) - 1; i >= 0; i-- {
		sum += int(data[i]-'0') * w
		w = 4 - w
	}
	return (10 - sum%10) % 10
}

func check(name, value string, minLength, length int) error {
	s := digits.OnlyDigits(value)
	if len(s) < minLength || len(s) > length {
		return fmt.Errorf("%s %q has %d digits: %w", name, value, len(s), domain.ErrLengthMismatch)
	}
	s = digits.PadLeft(s, length, '0')
	if CheckDigit(s[:length-1]) != int(s[length-1]-'0') {
		return fmt.Errorf("%s %q: %w", name, value, domain.ErrChecksumMismatch)
	}
	return nil
}

// CheckGTIN accepts GTIN-8 through GTIN-14; shorter codes are zero-filled to 14.
func CheckGTIN(value string) error { return check("GTIN", value, GTINMinLength, GTINLength) }

func CheckSSCC(value string) error { return check("SSCC", value, SSCCLength, SSCCLength) }

func CheckGSIN(value string) error { return check("GSIN", value, GSINLength, GSINLength) }

func ValidateGTIN(value string) bool { return CheckGTIN(value) == nil }

func ValidateSSCC(value string) bool { return CheckSSCC(value) == nil }

func ValidateGSIN(value string) bool { return CheckGSIN(value) == nil }

// Generatable reports whether Generate supports codes of length digits.
func Generatable(length int) bool {
	switch length {
	case 8, 12, 13, 14, GSINLength, SSCCLength:
		return true
	}
	return false
}

// Generate returns n random codes of the given length with a valid check
// digit. A nil r uses the global source.
func Generate(length, n int, r *rand.Rand) ([]string, error) {
	if !Generatable(length) {
		return nil, fmt.Errorf("gs1: cannot generate %d-digit codes: %w", length, domain.ErrInvalidInput)
	}
	if n < 1 {
		return nil, fmt.Errorf("gs1: count %d: %w", n, domain.ErrInvalidInput)
	}
	intN := rand.IntN
	if r != nil {
		intN = r.IntN
	}
	codes := make([]string, 0, n)
	var b strings.Builder
	for range n {
		b.Reset()
		for range length - 1 {
			b.WriteByte(byte('0' + intN(10)))
		}
		data := b.String()
		codes = append(codes, data+string(rune('0'+CheckDigit(data))))
	}
	return codes, nil
}
