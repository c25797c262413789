// Package fiscal validates and formats the national fiscal identifiers:
// CNPJ, CPF, CEP, BACEN country codes, SUFRAMA, PIS/PASEP, IBGE municipality
// codes and RECOPI numbers.
package fiscal

import (
	"fmt"
	"regexp"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

const (
	cnpjLen = 14
	cpfLen  = 11
)

// cnpjWeights covers the second check digit; the first uses cnpjWeights[1:].
var cnpjWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

var (
	nonAlnum   = regexp.MustCompile(`[^0-9A-Z]`)
	bareCNPJRe = regexp.MustCompile(`^[0-9A-Z]{12}[0-9]{2}$`)
)

// CleanCNPJ upper-cases value and drops everything but digits and letters.
func CleanCNPJ(value string) string {
	return nonAlnum.ReplaceAllString(strings.ToUpper(value), "")
}

// CheckCNPJ validates an alphanumeric CNPJ, mask allowed. Letters are worth
// their code point minus '0', so 'A' counts as 17.
func CheckCNPJ(value string) error {
	c := CleanCNPJ(value)
	if len(c) != cnpjLen {
		return fmt.Errorf("CNPJ %q has %d characters, want %d: %w", value, len(c), cnpjLen, domain.ErrLengthMismatch)
	}
	if !digits.IsDigits(c[12:]) {
		return fmt.Errorf("CNPJ %q check digits must be numeric: %w", value, domain.ErrInvalidFormat)
	}
	if digits.AllSame(c) {
		return fmt.Errorf("CNPJ %q has all characters equal: %w", value, domain.ErrChecksumMismatch)
	}
	vals := make([]int, cnpjLen)
	for i := 0; i < cnpjLen; i++ {
		vals[i] = int(c[i]) - '0'
	}
	if cnpjDigit(vals[:12]) != vals[12] || cnpjDigit(vals[:13]) != vals[13] {
		return fmt.Errorf("CNPJ %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// CheckCNPJStrict is CheckCNPJ without mask stripping.
func CheckCNPJStrict(value string) error {
	if !bareCNPJRe.MatchString(value) {
		return fmt.Errorf("CNPJ %q is not 14 bare characters: %w", value, domain.ErrLengthMismatch)
	}
	return CheckCNPJ(value)
}

func cnpjDigit(vals []int) int {
	return mod11Digit(digits.WeightedSum(vals, cnpjWeights[len(cnpjWeights)-len(vals):]))
}

// mod11Digit maps a weighted sum to 11 - sum%11, or 0 when the remainder is 0 or 1.
func mod11Digit(sum int) int {
	if r := sum % 11; r > 1 {
		return 11 - r
	}
	return 0
}

// ValidateCNPJ reports whether value is a valid CNPJ.
func ValidateCNPJ(value string) bool { return CheckCNPJ(value) == nil }

// CheckCPF validates a CPF, mask allowed.
func CheckCPF(value string) error {
	c := digits.OnlyDigits(value)
	if len(c) != cpfLen {
		return fmt.Errorf("CPF %q has %d digits, want %d: %w", value, len(c), cpfLen, domain.ErrLengthMismatch)
	}
	if digits.AllSame(c) {
		return fmt.Errorf("CPF %q has all digits equal: %w", value, domain.ErrChecksumMismatch)
	}
	vals := digits.Values(c)
	for n := 9; n < cpfLen; n++ {
		sum := 0
		for i := 0; i < n; i++ {
			sum += (n + 1 - i) * vals[i]
		}
		if mod11Digit(sum) != vals[n] {
			return fmt.Errorf("CPF %q: %w", value, domain.ErrChecksumMismatch)
		}
	}
	return nil
}

// CheckCPFStrict is CheckCPF without mask stripping.
func CheckCPFStrict(value string) error {
	if len(value) != cpfLen || !digits.IsDigits(value) {
		return fmt.Errorf("CPF %q is not 11 bare digits: %w", value, domain.ErrLengthMismatch)
	}
	return CheckCPF(value)
}

// ValidateCPF reports whether value is a valid CPF.
func ValidateCPF(value string) bool { return CheckCPF(value) == nil }

// CheckCNPJOrCPF dispatches on the cleaned length: 14 is a CNPJ, 11 a CPF.
func CheckCNPJOrCPF(value string) error {
	c := CleanCNPJ(value)
	switch len(c) {
	case cnpjLen:
		return CheckCNPJ(c)
	case cpfLen:
		if !digits.IsDigits(c) {
			return fmt.Errorf("CPF %q must be numeric: %w", value, domain.ErrInvalidFormat)
		}
		return CheckCPF(c)
	default:
		return fmt.Errorf("CNPJ/CPF %q has %d characters: %w", value, len(c), domain.ErrLengthMismatch)
	}
}

// CheckCNPJOrCPFStrict is CheckCNPJOrCPF without mask stripping.
func CheckCNPJOrCPFStrict(value string) error {
	if len(value) == cpfLen {
		return CheckCPFStrict(value)
	}
	return CheckCNPJStrict(value)
}

// ValidateCNPJOrCPF reports whether value is a valid CNPJ or CPF.
func ValidateCNPJOrCPF(value string) bool { return CheckCNPJOrCPF(value) == nil }

// FormatCNPJ renders NN.NNN.NNN/NNNN-NN, or returns value unchanged when invalid.
func FormatCNPJ(value string) string {
	if !ValidateCNPJ(value) {
		return value
	}
	c := CleanCNPJ(value)
	return c[0:2] + "." + c[2:5] + "." + c[5:8] + "/" + c[8:12] + "-" + c[12:14]
}

// FormatCPF renders NNN.NNN.NNN-NN, or returns value unchanged when invalid.
func FormatCPF(value string) string {
	if !ValidateCPF(value) {
		return value
	}
	c := digits.OnlyDigits(value)
	return c[0:3] + "." + c[3:6] + "." + c[6:9] + "-" + c[9:11]
}

// FormatCNPJOrCPF dispatches on the cleaned length like CheckCNPJOrCPF and
// returns value unchanged when that check fails.
func FormatCNPJOrCPF(value string) string {
	if !ValidateCNPJOrCPF(value) {
		return value
	}
	if len(CleanCNPJ(value)) == cnpjLen {
		return FormatCNPJ(value)
	}
	return FormatCPF(value)
}
