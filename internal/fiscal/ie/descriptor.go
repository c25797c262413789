package ie

import (
	"strings"

	"brfiscal/internal/digits"
)

var defaultWeights = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}

// descriptor is the generic algorithm: the first `checked` digits are
// weighted with the tail of `weights`; each further check digit prepends
// weights[0]+1 and reruns the sum.
type descriptor struct {
	length       int
	checked      int // defaults to length-1
	prefixes     []string
	weights      []int // defaults to defaultWeights
	modulus      int   // defaults to 11
	rawRemainder bool  // append sum%modulus instead of the 11-r digit
	mask         string
}

func descriptorRule(d descriptor) rule {
	if d.checked == 0 {
		d.checked = d.length - 1
	}
	if d.weights == nil {
		d.weights = defaultWeights
	}
	if d.modulus == 0 {
		d.modulus = 11
	}
	return rule{validate: d.validate, format: d.format, lengths: []int{d.length}, padded: true}
}

func (d descriptor) validate(value string) bool {
	s := digits.OnlyDigits(digits.PadLeft(strings.TrimSpace(value), d.length, '0'))
	if len(s) != d.length || !d.hasPrefix(s) {
		return false
	}
	vals := digits.Values(s)

	weights := append([]int(nil), d.weights[len(d.weights)-d.checked:]...)
	out := append(make([]int, 0, d.length), vals[:d.checked]...)
	for len(out) < d.length {
		r := digits.WeightedSum(out, weights) % d.modulus
		f := 0
		if r > 1 {
			f = 11 - r
		}
		if d.rawRemainder {
			out = append(out, r)
		} else {
			out = append(out, f)
		}
		weights = append([]int{weights[0] + 1}, weights...)
	}
	return equal(out, vals)
}

func (d descriptor) hasPrefix(s string) bool {
	if len(d.prefixes) == 0 {
		return true
	}
	for _, p := range d.prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func (d descriptor) format(value string) string {
	s := digits.OnlyDigits(value)
	s = digits.PadLeft(s, d.length, '0')
	if len(s) != d.length || placeholders(d.mask) != d.length {
		return s
	}
	return applyMask(s, d.mask)
}

func equal(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
