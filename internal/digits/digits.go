// Package digits holds the character-level helpers and the modulo-11 check
// digit shared by every identifier validator.
package digits

import "strings"

const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// OnlyDigits returns the ASCII digits of s, preserving order.
func OnlyDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// IsDigits reports whether s is non-empty and made only of ASCII digits.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// StripPunctuation removes ASCII punctuation and keeps everything else,
// including letters, whitespace and non-ASCII runes.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x80 && strings.ContainsRune(asciiPunctuation, r) {
			return -1
		}
		return r
	}, s)
}

// AllSame reports whether s is non-empty and every byte equals the first.
func AllSame(s string) bool {
	if s == "" {
		return false
	}
	return strings.Count(s, s[:1]) == len(s)
}

// PadLeft left-pads s with pad up to width bytes. Longer strings are returned as is.
func PadLeft(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}

// Modulo11 computes the check digit of a digit string using weights 2..9
// cycling from the rightmost digit. Results of 10 and 11 map to 0.
func Modulo11(base string) int {
	sum := 0
	weight := 2
	for i := len(base) - 1; i >= 0; i-- {
		sum += int(base[i]-'0') * weight
		weight++
		if weight > 9 {
			weight = 2
		}
	}
	dv := 11 - sum%11
	if dv >= 10 {
		return 0
	}
	return dv
}

// Values converts a digit string into its integer digits.
func Values(s string) []int {
	out := make([]int, len(s))
	for i := 0; i < len(s); i++ {
		out[i] = int(s[i] - '0')
	}
	return out
}

// WeightedSum multiplies values by weights pairwise, stopping at the shorter slice.
func WeightedSum(values, weights []int) int {
	n := len(values)
	if len(weights) < n {
		n = len(weights)
	}
	sum := 0
	for i := 0; i < n; i++ {
		sum += values[i] * weights[i]
	}
	return sum
}
