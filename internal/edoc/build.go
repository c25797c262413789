package edoc

import (
	"fmt"
	"strconv"
	"strings"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
)

// DefaultIssuanceForm is the normal (non-contingency) emission mode.
const DefaultIssuanceForm = 1

// Fields are the inputs to Build. Series and Code are optional; a zero
// IssuanceForm becomes DefaultIssuanceForm on layouts that carry one.
type Fields struct {
	UF           int    `json:"uf"`
	YearMonth    string `json:"year_month"`
	Issuer       string `json:"issuer"`
	Model        string `json:"model"`
	Series       int    `json:"series"`
	Number       int    `json:"number"`
	IssuanceForm int    `json:"issuance_form"`
	Code         string `json:"code"`
}

type part struct {
	name  string
	value string
	field Field
}

// Build assembles a key from its fields, deriving the random code when it is
// not given and appending the check digit. The result is not validated.
func Build(f Fields) (*Key, error) {
	if f.UF == 0 || f.YearMonth == "" || f.Issuer == "" || f.Model == "" || f.Number == 0 {
		return nil, fmt.Errorf("build access key: missing mandatory field: %w", domain.ErrMalformedKey)
	}
	l := LayoutFor(f.Model)

	var b strings.Builder
	b.Grow(KeyLength)
	put := func(name, value string, field Field) error {
		if !digits.IsDigits(value) || len(value) > field.Width {
			return fmt.Errorf("build access key: %s %q does not fit %d digits: %w", name, value, field.Width, domain.ErrMalformedKey)
		}
		b.WriteString(digits.PadLeft(value, field.Width, '0'))
		return nil
	}

	steps := []part{
		{"uf", strconv.Itoa(f.UF), l.UF},
		{"year_month", f.YearMonth, l.YearMonth},
		{"issuer", digits.StripPunctuation(f.Issuer), l.Issuer},
		{"model", f.Model, l.Model},
		{"series", strconv.Itoa(f.Series), l.Series},
		{"number", strconv.Itoa(f.Number), l.Number},
	}
	if l.IssuanceForm.Width > 0 {
		form := f.IssuanceForm
		if form == 0 {
			form = DefaultIssuanceForm
		}
		steps = append(steps, part{"issuance_form", strconv.Itoa(form), l.IssuanceForm})
	}
	for _, s := range steps {
		if err := put(s.name, s.value, s.field); err != nil {
			return nil, err
		}
	}
	if len(f.YearMonth) != l.YearMonth.Width {
		return nil, fmt.Errorf("build access key: year_month %q: %w", f.YearMonth, domain.ErrMalformedKey)
	}

	code := f.Code
	if code == "" {
		code = derivedCode(b.String(), l.Code.Width)
	}
	if err := put("code", code, l.Code); err != nil {
		return nil, err
	}

	body := b.String()
	return newKey(body + strconv.Itoa(digits.Modulo11(body))), nil
}

// derivedCode replaces a random code with a deterministic one: the sum of
// each digit raised to the ninth power, truncated to its last width digits.
func derivedCode(body string, width int) string {
	var sum int64
	for i := 0; i < len(body); i++ {
		d := int64(body[i] - '0')
		p := int64(1)
		for j := 0; j < 9; j++ {
			p *= d
		}
		sum += p
	}
	s := strconv.FormatInt(sum, 10)
	if len(s) > width {
		return s[len(s)-width:]
	}
	return digits.PadLeft(s, width, '0')
}
