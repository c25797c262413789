package fiscal

import (
	"fmt"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
	"brfiscal/internal/uf"
)

// CheckBACEN validates a BACEN country code. Up to 4 digits, zero-filled.
func CheckBACEN(value string) error {
	if !digits.IsDigits(value) {
		return fmt.Errorf("BACEN code %q must be numeric: %w", value, domain.ErrInvalidFormat)
	}
	if len(value) > 4 {
		return fmt.Errorf("BACEN code %q has more than 4 digits: %w", value, domain.ErrLengthMismatch)
	}
	vals := digits.Values(digits.PadLeft(value, 4, '0'))
	if mod11Digit(digits.WeightedSum(vals[:3], []int{4, 3, 2})) != vals[3] {
		return fmt.Errorf("BACEN code %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// ValidateBACEN reports whether value is a valid BACEN country code.
func ValidateBACEN(value string) bool { return CheckBACEN(value) == nil }

// CheckSUFRAMA validates a 9-digit SUFRAMA registration.
func CheckSUFRAMA(value string) error {
	if !digits.IsDigits(value) {
		return fmt.Errorf("SUFRAMA %q must be numeric: %w", value, domain.ErrInvalidFormat)
	}
	if len(value) != 9 {
		return fmt.Errorf("SUFRAMA %q has %d digits, want 9: %w", value, len(value), domain.ErrLengthMismatch)
	}
	if value[:2] == "00" {
		return fmt.Errorf("SUFRAMA %q starts with 00: %w", value, domain.ErrInvalidFormat)
	}
	vals := digits.Values(value)
	if mod11Digit(digits.WeightedSum(vals[:8], []int{9, 8, 7, 6, 5, 4, 3, 2})) != vals[8] {
		return fmt.Errorf("SUFRAMA %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// ValidateSUFRAMA reports whether value is a valid SUFRAMA registration.
func ValidateSUFRAMA(value string) bool { return CheckSUFRAMA(value) == nil }

// CheckPISPASEP validates a PIS/PASEP/NIT number. Dots, spaces and tabs are
// ignored; a hyphen is only accepted right before the check digit.
func CheckPISPASEP(value string) error {
	vals := make([]int, 0, 11)
	for _, c := range value {
		switch {
		case c == '.' || c == ' ' || c == '\t':
		case c == '-':
			if len(vals) != 10 {
				return fmt.Errorf("PIS/PASEP %q has a misplaced hyphen: %w", value, domain.ErrInvalidFormat)
			}
		case c >= '0' && c <= '9':
			vals = append(vals, int(c-'0'))
		default:
			return fmt.Errorf("PIS/PASEP %q has invalid character %q: %w", value, c, domain.ErrInvalidFormat)
		}
	}
	if len(vals) != 11 {
		return fmt.Errorf("PIS/PASEP %q has %d digits, want 11: %w", value, len(vals), domain.ErrLengthMismatch)
	}
	rest := digits.WeightedSum(vals[:10], []int{3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) % 11
	if rest != 0 {
		rest = 11 - rest
	}
	if rest != vals[10] {
		return fmt.Errorf("PIS/PASEP %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// ValidatePISPASEP reports whether value is a valid PIS/PASEP number.
func ValidatePISPASEP(value string) bool { return CheckPISPASEP(value) == nil }

// municipalityExceptions are codes accepted without running the check digit.
var municipalityExceptions = map[string]string{
	"9999999": "EXTERIOR",
	"4305871": "Coronel Barros/RS",
	"2201919": "Bom Princípio do Piauí/PI",
	"2202251": "Canavieira/PI",
	"2201988": "Brejo do Piauí/PI",
	"2611533": "Quixaba/PE",
	"3117836": "Cônego Marinho/MG",
	"3152131": "Ponto Chique/MG",
	"5203939": "Buriti de Goiás/GO",
	"5203962": "Buritinópolis/GO",
}

// CheckMunicipality validates a 7-digit IBGE municipality code.
func CheckMunicipality(value string) error {
	if _, ok := municipalityExceptions[value]; ok {
		return nil
	}
	if len(value) != 7 {
		return fmt.Errorf("municipality code %q has %d digits, want 7: %w", value, len(value), domain.ErrLengthMismatch)
	}
	if !digits.IsDigits(value) {
		return fmt.Errorf("municipality code %q must be numeric: %w", value, domain.ErrInvalidFormat)
	}
	vals := digits.Values(value)
	if !uf.IsIBGECode(vals[0]*10 + vals[1]) {
		return fmt.Errorf("municipality code %q: %w", value, domain.ErrUnknownState)
	}
	if value[2:6] == "0000" {
		return fmt.Errorf("municipality code %q has a zero order number: %w", value, domain.ErrInvalidFormat)
	}
	sum := 0
	for i, w := range []int{1, 2, 1, 2, 1, 2} {
		p := vals[i] * w
		sum += p/10 + p%10
	}
	dv := 0
	if rest := sum % 10; rest != 0 {
		dv = 10 - rest
	}
	if dv != vals[6] {
		return fmt.Errorf("municipality code %q: %w", value, domain.ErrChecksumMismatch)
	}
	return nil
}

// ValidateMunicipality reports whether value is a valid municipality code.
func ValidateMunicipality(value string) bool { return CheckMunicipality(value) == nil }

// MunicipalityException returns the label of a code on the exception list.
func MunicipalityException(code string) (string, bool) {
	name, ok := municipalityExceptions[code]
	return name, ok
}

// FormatMunicipality strips everything but digits.
func FormatMunicipality(value string) string {
	return digits.OnlyDigits(value)
}
