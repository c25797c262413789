// Package numfmt renders and checks monetary and quantity decimals the way
// fiscal documents print them.
package numfmt

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"brfiscal/internal/domain"
)

// Separators returns the grouping and decimal separators used by tag. They are
// read back from how the locale prints 1234.5.
func Separators(tag language.Tag) (group, point string) {
	probe := message.NewPrinter(tag).Sprintf("%v", number.Decimal(1234.5, number.Scale(1)))
	var marks []string
	for _, r := range probe {
		if !unicode.IsDigit(r) {
			marks = append(marks, string(r))
		}
	}
	switch len(marks) {
	case 0:
		return ",", "."
	case 1:
		return "", marks[0]
	default:
		return marks[0], marks[len(marks)-1]
	}
}

// FormatDecimal prints d with the separators of tag, keeping every digit of
// precision. With trimZeros, insignificant trailing zeros are dropped along
// with a dangling decimal separator.
func FormatDecimal(d decimal.Decimal, trimZeros bool, tag language.Tag) string {
	places := int32(0)
	if e := d.Exponent(); e < 0 {
		places = -e
	}
	s := d.StringFixed(places)
	if trimZeros && strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, hasFrac := strings.Cut(s, ".")

	group, point := Separators(tag)
	var b strings.Builder
	b.WriteString(sign)
	for i := range len(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(group)
		}
		b.WriteByte(intPart[i])
	}
	if hasFrac {
		b.WriteString(point)
		b.WriteString(frac)
	}
	return b.String()
}

// DecimalPlaces is the magnitude of the exponent: 2 for 1.50, and also 2 for
// decimal.New(1, 2).
func DecimalPlaces(d decimal.Decimal) int {
	e := int(d.Exponent())
	if e < 0 {
		return -e
	}
	return e
}

// CheckDecimalPlaces fails with domain.ErrInvalidFormat when d is written with
// fewer than minPlaces or more than maxPlaces decimal places.
func CheckDecimalPlaces(d decimal.Decimal, minPlaces, maxPlaces int) error {
	if n := DecimalPlaces(d); n < minPlaces || n > maxPlaces {
		return fmt.Errorf("%s has %d decimal places, want %d..%d: %w", d.String(), n, minPlaces, maxPlaces, domain.ErrInvalidFormat)
	}
	return nil
}

// PriceRatio apportions price across a total: price * amount / total, or zero
// when total is zero.
func PriceRatio(price, amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return price.Mul(amount).Div(total)
}
