// Package ie validates and formats state tax registrations (Inscrição
// Estadual). Every state maps to either a generic weighted-modulo descriptor
// or a dedicated routine.
package ie

import (
	"fmt"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

// rule is the closed per-state entry: one validation routine, one formatter,
// and the digit counts it accepts (used to tell length errors from checksum errors).
type rule struct {
	validate func(string) bool
	format   func(string) string
	lengths  []int
	padded   bool
}

var rules = map[string]rule{
	"ac": descriptorRule(descriptor{length: 13, checked: 11, prefixes: []string{"01"}, mask: "xx.xxx.xxx/xxx-xx"}),
	"al": descriptorRule(descriptor{length: 9, prefixes: []string{"24"}, mask: "xx.xxx.xxx-x"}),
	"am": descriptorRule(descriptor{length: 9, mask: "xx.xxx.xxx-x"}),
	"ap": {validate: validateAP, format: padMask(9, "xx.xxx.xxx-x"), lengths: []int{9}},
	"ba": {validate: validateBA, format: formatBA, lengths: []int{8, 9}},
	"ce": descriptorRule(descriptor{length: 9, mask: "xx.xxxxxx-x"}),
	"df": descriptorRule(descriptor{length: 13, checked: 11, prefixes: []string{"07", "08"}, mask: "xx-xxx.xxx/xxx-xx"}),
	"es": descriptorRule(descriptor{length: 9, mask: "xxx.xxx.xx-x"}),
	"go": {validate: validateGO, format: padMask(9, "xx.xxx.xxx-x"), lengths: []int{9}},
	"ma": descriptorRule(descriptor{length: 9, prefixes: []string{"12"}, mask: "xx.xxx.xxx-x"}),
	"mg": {validate: validateMG, format: lengthMasks(map[int]string{13: "xxx.xxx.xxx/xx-xx"}), lengths: []int{13}},
	"ms": descriptorRule(descriptor{length: 9, prefixes: []string{"28"}, mask: "xx.xxx.xxx-x"}),
	"mt": descriptorRule(descriptor{length: 11, weights: []int{3, 2, 9, 8, 7, 6, 5, 4, 3, 2}, mask: "xx.xx.xx.xxxx-x"}),
	"pa": descriptorRule(descriptor{length: 9, prefixes: []string{"15"}, mask: "xx.xxx.xxx-x"}),
	"pb": descriptorRule(descriptor{length: 9, mask: "xx.xxx.xxx-x"}),
	"pe": {validate: validatePE, format: lengthMasks(map[int]string{9: "xxxxxxx-xx", 14: "xx.x.xxx.xxxxxxx-x"}), lengths: []int{9, 14}},
	"pi": descriptorRule(descriptor{length: 9, mask: "xx.xxx.xxx-x"}),
	"pr": descriptorRule(descriptor{length: 10, checked: 8, weights: []int{3, 2, 7, 6, 5, 4, 3, 2}, mask: "xxxxxxxx-xx"}),
	"rj": descriptorRule(descriptor{length: 8, weights: []int{2, 7, 6, 5, 4, 3, 2}, mask: "xx.xxx.xx-x"}),
	"rn": {validate: validateRN, format: lengthMasks(map[int]string{9: "xx.xxx.xxx-x", 10: "xxx.xxx.xxx-x"}), lengths: []int{9, 10}},
	"ro": {validate: validateRO, format: digits.OnlyDigits, lengths: []int{9, 14}},
	"rr": descriptorRule(descriptor{length: 9, prefixes: []string{"24"}, weights: []int{1, 2, 3, 4, 5, 6, 7, 8}, modulus: 9, rawRemainder: true, mask: "xx.xxx.xxx-x"}),
	"rs": descriptorRule(descriptor{length: 10, mask: "xxx/xxx.xxx-x"}),
	"sc": descriptorRule(descriptor{length: 9, mask: "xxx.xxx.xxx"}),
	"se": descriptorRule(descriptor{length: 9, mask: "xx.xxx.xxx-x"}),
	"sp": {validate: validateSP, format: formatSP, lengths: []int{12}},
	"to": {validate: validateTO, format: padMask(9, "xx.xxx.xxx-x"), lengths: []int{9}},
}

func lookup(uf string) (rule, bool) {
	r, ok := rules[strings.ToLower(strings.TrimSpace(uf))]
	return r, ok
}

// Supported reports whether a routine exists for the state.
func Supported(uf string) bool {
	_, ok := lookup(uf)
	return ok
}

// Validate reports whether value is a valid registration for the state.
// Unknown states are never valid.
func Validate(uf, value string) bool {
	r, ok := lookup(uf)
	if !ok || strings.TrimSpace(value) == "" {
		return false
	}
	return r.validate(value)
}

// Check is the error-returning form of Validate.
func Check(uf, value string) error {
	r, ok := lookup(uf)
	if !ok {
		return fmt.Errorf("IE for %q: %w", uf, domain.ErrUnknownState)
	}
	if strings.TrimSpace(value) != "" && r.validate(value) {
		return nil
	}
	n := len(digits.OnlyDigits(value))
	if !r.acceptsLength(n) {
		return fmt.Errorf("IE %q for %s has %d digits: %w", value, strings.ToUpper(uf), n, domain.ErrLengthMismatch)
	}
	return fmt.Errorf("IE %q for %s: %w", value, strings.ToUpper(uf), domain.ErrChecksumMismatch)
}

func (r rule) acceptsLength(n int) bool {
	if r.padded {
		return n > 0 && n <= r.lengths[0]
	}
	for _, l := range r.lengths {
		if l == n {
			return true
		}
	}
	return false
}

// Format applies the state's display mask. Values whose digit count does not
// fit the mask come back as bare digits, as do values for unknown states.
func Format(uf, value string) string {
	r, ok := lookup(uf)
	if !ok {
		return digits.OnlyDigits(value)
	}
	return r.format(value)
}

// applyMask replaces each 'x' in mask with the next digit of s. The caller
// guarantees len(s) equals the number of placeholders.
func applyMask(s, mask string) string {
	var b strings.Builder
	b.Grow(len(mask))
	i := 0
	for j := 0; j < len(mask); j++ {
		if mask[j] == 'x' {
			b.WriteByte(s[i])
			i++
			continue
		}
		b.WriteByte(mask[j])
	}
	return b.String()
}

func placeholders(mask string) int {
	return strings.Count(mask, "x")
}

// padMask left-pads the raw value with zeros before cleaning, like the
// generic validator does.
func padMask(length int, mask string) func(string) string {
	return func(value string) string {
		s := digits.OnlyDigits(digits.PadLeft(strings.TrimSpace(value), length, '0'))
		if len(s) != length {
			return s
		}
		return applyMask(s, mask)
	}
}

func lengthMasks(masks map[int]string) func(string) string {
	return func(value string) string {
		s := digits.OnlyDigits(value)
		if mask, ok := masks[len(s)]; ok {
			return applyMask(s, mask)
		}
		return s
	}
}
