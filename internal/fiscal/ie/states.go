package ie

import (
	"strconv"
	"strings"

	"brfiscal/internal/digits"
)

var weights9to2 = []int{9, 8, 7, 6, 5, 4, 3, 2}

// mod11 returns 11 - sum%11, or 0 when the remainder is 0 or 1.
func mod11(sum int) int {
	if r := sum % 11; r > 1 {
		return 11 - r
	}
	return 0
}

// validateAP: the constants p and d depend on which numbering range the
// first 8 digits fall in.
func validateAP(value string) bool {
	s := digits.OnlyDigits(value)
	if len(s) != 9 || !strings.HasPrefix(s, "03") {
		return false
	}
	n, _ := strconv.Atoi(s[:8])
	p, d := 0, 0
	switch {
	case n <= 3017000:
		p, d = 5, 0
	case n <= 3019022:
		p, d = 9, 1
	}
	vals := digits.Values(s)
	r := (p + digits.WeightedSum(vals[:8], weights9to2)) % 11
	f := d
	switch {
	case r > 1:
		f = 11 - r
	case r == 1:
		f = 0
	}
	return f == vals[8]
}

// validateBA computes the last digit first, then the one before it. The
// modulus is 10 or 11 depending on the leading digit (second digit for
// 9-digit registrations).
func validateBA(value string) bool {
	vals := digits.Values(digits.OnlyDigits(value))
	var length, checked, test int
	switch len(vals) {
	case 8:
		length, checked, test = 8, 6, 0
	case 9:
		length, checked, test = 9, 7, 1
	default:
		return false
	}
	base := []int{8, 7, 6, 5, 4, 3, 2}
	weights := append([]int(nil), base[len(base)-checked:]...)

	modulus := 11
	switch vals[test] {
	case 0, 1, 2, 3, 4, 5, 8:
		modulus = 10
	}

	out := append(make([]int, 0, length), vals[:checked]...)
	for len(out) < length {
		r := digits.WeightedSum(out, weights) % modulus
		f := 0
		if r > 0 {
			f = modulus - r
		}
		if f >= 10 && modulus == 11 {
			f = 0
		}
		if len(out) == checked {
			out = append(out, f)
		} else {
			out = append(out[:checked], append([]int{f}, out[checked:]...)...)
		}
		weights = append([]int{weights[0] + 1}, weights...)
	}
	return equal(out, vals)
}

func formatBA(value string) string {
	s := digits.OnlyDigits(value)
	if len(s) == 8 {
		s = "0" + s
	}
	if len(s) == 9 {
		return applyMask(s, "xxx.xxx.xxx")
	}
	return s
}

// validateGO accepts the 10, 11 and 20 prefixes. A remainder of 1 yields 1
// inside the 10103105..10119997 range and 0 elsewhere.
func validateGO(value string) bool {
	s := digits.OnlyDigits(value)
	if len(s) != 9 {
		return false
	}
	switch s[:2] {
	case "10", "11", "20":
	default:
		return false
	}
	n, _ := strconv.Atoi(s[:8])
	d := 0
	if n >= 10103105 && n <= 10119997 {
		d = 1
	}
	vals := digits.Values(s)
	r := digits.WeightedSum(vals[:8], weights9to2) % 11
	f := 0
	switch {
	case r > 1:
		f = 11 - r
	case r == 1:
		f = d
	}
	return f == vals[8]
}

// validateMG: the first digit inserts a zero after the municipality code and
// sums the digits of each 1/2-weighted product; the second is plain modulo 11.
func validateMG(value string) bool {
	s := digits.OnlyDigits(value)
	if len(s) != 13 {
		return false
	}
	vals := digits.Values(s)

	aux := make([]int, 0, 12)
	aux = append(aux, vals[:3]...)
	aux = append(aux, 0)
	aux = append(aux, vals[3:11]...)
	sum := 0
	for i, v := range aux {
		p := v * (1 + i%2)
		sum += p/10 + p%10
	}
	dv1 := (sum/10+1)*10 - sum
	if dv1 >= 10 {
		dv1 = 0
	}

	out := append(append(make([]int, 0, 13), vals[:11]...), dv1)
	dv2 := mod11(digits.WeightedSum(out, []int{3, 2, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2}))
	return dv1 == vals[11] && dv2 == vals[12]
}

// validatePE handles both the 9-digit eFisco number and the legacy 14-digit one.
func validatePE(value string) bool {
	vals := digits.Values(digits.OnlyDigits(value))
	switch len(vals) {
	case 9:
		out := append(make([]int, 0, 9), vals[:7]...)
		weights := []int{8, 7, 6, 5, 4, 3, 2}
		for len(out) < 9 {
			out = append(out, mod11(digits.WeightedSum(out, weights)))
			weights = append([]int{9}, weights...)
		}
		return equal(out, vals)
	case 14:
		f := 11 - digits.WeightedSum(vals[:13], []int{5, 4, 3, 2, 1, 9, 8, 7, 6, 5, 4, 3, 2})%11
		if f > 10 {
			f -= 10
		}
		return f == vals[13]
	default:
		return false
	}
}

// validateRN multiplies the weighted sum by 10 before taking modulo 11.
func validateRN(value string) bool {
	s := digits.OnlyDigits(value)
	if !strings.HasPrefix(s, "20") {
		return false
	}
	vals := digits.Values(s)
	var weights []int
	switch len(vals) {
	case 9:
		weights = weights9to2
	case 10:
		weights = []int{10, 9, 8, 7, 6, 5, 4, 3, 2}
	default:
		return false
	}
	n := len(vals) - 1
	r := digits.WeightedSum(vals[:n], weights) * 10 % 11
	if r == 10 {
		r = 0
	}
	return r == vals[n]
}

// validateRO drops the 3-digit municipality prefix of 9-digit registrations.
func validateRO(value string) bool {
	vals := digits.Values(digits.OnlyDigits(value))
	dv := func(in, weights []int) int {
		f := 11 - digits.WeightedSum(in, weights)%11
		if f > 9 {
			f -= 10
		}
		return f
	}
	switch len(vals) {
	case 9:
		return dv(vals[3:8], []int{6, 5, 4, 3, 2}) == vals[8]
	case 14:
		return dv(vals[:13], []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}) == vals[13]
	default:
		return false
	}
}

// validateSP covers industrial/commercial registrations (two check digits,
// at positions 9 and 12) and rural producers, written with a leading 'P'.
func validateSP(value string) bool {
	if value == "" {
		return false
	}
	vals := digits.Values(digits.OnlyDigits(value))
	if len(vals) != 12 {
		return false
	}
	weights := []int{1, 3, 4, 5, 6, 7, 8, 10}

	if value[0] == 'P' {
		if vals[0] != 0 {
			return false
		}
		return digits.WeightedSum(vals[:8], weights)%11 == vals[8]
	}

	sp := func(sum int) int {
		r := sum % 11
		if r == 10 {
			return 0
		}
		return r
	}
	out := append(make([]int, 0, 12), vals[:8]...)
	out = append(out, sp(digits.WeightedSum(out, weights)))
	out = append(out, vals[9:11]...)
	out = append(out, sp(digits.WeightedSum(out, []int{3, 2, 10, 9, 8, 7, 6, 5, 4, 3, 2})))
	return equal(out, vals)
}

func formatSP(value string) string {
	s := digits.OnlyDigits(value)
	if len(s) != 12 {
		return s
	}
	if strings.HasPrefix(value, "P") {
		return "P-" + s[:8] + "." + s[8:9] + "/" + s[9:]
	}
	return applyMask(s, "xxx.xxx.xxx.xxx")
}

// validateTO follows the post-2002 9-digit layout.
func validateTO(value string) bool {
	s := digits.OnlyDigits(value)
	if len(s) != 9 {
		return false
	}
	vals := digits.Values(s)
	return mod11(digits.WeightedSum(vals[:8], weights9to2)) == vals[8]
}
