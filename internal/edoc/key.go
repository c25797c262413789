package edoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"brfiscal/internal/digits"
	"brfiscal/internal/domain"
	"brfiscal/internal/fiscal"
	"brfiscal/internal/uf"
)

var keyPattern = regexp.MustCompile(`^(?:CFe|NFe|CTe|MDFe)?(\d{44})$`)

// CF-e SAT went live in November 2012; earlier keys cannot exist.
var cfeSATStart = time.Date(2012, time.November, 1, 0, 0, 0, 0, time.UTC)

// Series 920-969 of generic-layout documents are reserved for individuals
// issuing with a CPF; the issuer slot then holds "000" followed by the CPF.
const (
	cpfSeriesFirst = 920
	cpfSeriesLast  = 969
	cpfIssuerPad   = "000"
)

// Key is a decoded access key. It is immutable once built.
type Key struct {
	digits string
	layout Layout
}

// Parse decodes a key with an optional NFe/CTe/MDFe/CFe prefix. It checks the
// shape only; call Validate for the semantic rules.
func Parse(s string) (*Key, error) {
	m := keyPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return nil, fmt.Errorf("access key %q: %w", s, domain.ErrMalformedKey)
	}
	return newKey(m[1]), nil
}

// ParseAndValidate is Parse followed by Validate.
func ParseAndValidate(s string) (*Key, error) {
	k, err := Parse(s)
	if err != nil {
		return nil, err
	}
	if err := k.Validate(); err != nil {
		return nil, err
	}
	return k, nil
}

func newKey(d string) *Key {
	return &Key{digits: d, layout: LayoutFor(GenericLayout.Model.of(d))}
}

// Validate checks, in order, the check digit, the document model, the state
// code, the issuer CNPJ/CPF and, for CF-e SAT, the emission month.
func (k *Key) Validate() error {
	if want := digits.Modulo11(k.digits[:KeyLength-1]); want != k.CheckDigit() {
		return fmt.Errorf("access key %s: computed %d: %w", k.digits, want, domain.ErrChecksumMismatch)
	}
	if !KnownModel(k.Model()) {
		return fmt.Errorf("access key %s: model %s: %w", k.digits, k.Model(), domain.ErrUnknownDocumentModel)
	}
	if !uf.IsIBGECode(k.UFCode()) {
		return fmt.Errorf("access key %s: state code %02d: %w", k.digits, k.UFCode(), domain.ErrUnknownState)
	}
	if !k.issuerValid() {
		return fmt.Errorf("access key %s: issuer %s: %w", k.digits, k.IssuerID(), domain.ErrInvalidIssuerID)
	}
	if k.layout.Name == CFeSATLayout.Name {
		if m := k.Month(); m < 1 || m > 12 {
			return fmt.Errorf("access key %s: month %02d: %w", k.digits, m, domain.ErrInvalidEmissionDate)
		}
		if k.EmissionMonth().Before(cfeSATStart) {
			return fmt.Errorf("access key %s: %s precedes CF-e SAT: %w", k.digits, k.YearMonth(), domain.ErrInvalidEmissionDate)
		}
	}
	return nil
}

// IssuerIsCPF reports whether the series reserves the issuer slot for a CPF.
func (k *Key) IssuerIsCPF() bool {
	if k.layout.Name != GenericLayout.Name {
		return false
	}
	n, err := strconv.Atoi(k.Series())
	return err == nil && n >= cpfSeriesFirst && n <= cpfSeriesLast
}

func (k *Key) issuerValid() bool {
	id := k.IssuerID()
	if k.IssuerIsCPF() {
		return strings.HasPrefix(id, cpfIssuerPad) && fiscal.ValidateCPF(id[len(cpfIssuerPad):])
	}
	return fiscal.ValidateCNPJ(id)
}

// Partition splits the key into n equal groups for display. n must divide 44.
func (k *Key) Partition(n int) []string {
	if n <= 0 || KeyLength%n != 0 {
		panic(fmt.Sprintf("edoc: %d parts do not divide a %d-digit key", n, KeyLength))
	}
	step := KeyLength / n
	parts := make([]string, 0, n)
	for i := 0; i < KeyLength; i += step {
		parts = append(parts, k.digits[i:i+step])
	}
	return parts
}

func (k *Key) field(f Field) string { return f.of(k.digits) }

func (k *Key) Layout() Layout { return k.layout }

// Digits returns the 44 digits without prefix.
func (k *Key) Digits() string { return k.digits }

// Prefix is the document-type tag for the model, or "" for unknown models.
func (k *Key) Prefix() string { return modelPrefix[k.Model()] }

func (k *Key) String() string { return k.Prefix() + k.digits }

func (k *Key) UFCode() int {
	n, _ := strconv.Atoi(k.field(k.layout.UF))
	return n
}

// UF resolves the state code against the registry.
func (k *Key) UF() (uf.UF, error) { return uf.ByIBGE(k.UFCode()) }

// YearMonth is the raw AAMM field.
func (k *Key) YearMonth() string { return k.field(k.layout.YearMonth) }

func (k *Key) Year() int {
	n, _ := strconv.Atoi(k.YearMonth()[:2])
	return 2000 + n
}

func (k *Key) Month() int {
	n, _ := strconv.Atoi(k.YearMonth()[2:])
	return n
}

// EmissionMonth is the first instant of the emission month in UTC. The result
// is normalized by time.Date when the month field is out of range.
func (k *Key) EmissionMonth() time.Time {
	return time.Date(k.Year(), time.Month(k.Month()), 1, 0, 0, 0, 0, time.UTC)
}

// IssuerID is the raw 14-digit issuer slot.
func (k *Key) IssuerID() string { return k.field(k.layout.Issuer) }

// IssuerIDFormatted punctuates the issuer as CPF or CNPJ depending on the series.
func (k *Key) IssuerIDFormatted() string {
	id := k.IssuerID()
	if k.IssuerIsCPF() {
		return fiscal.FormatCPF(strings.TrimPrefix(id, cpfIssuerPad))
	}
	return fiscal.FormatCNPJ(id)
}

func (k *Key) Model() string { return k.field(k.layout.Model) }

func (k *Key) Series() string { return k.field(k.layout.Series) }

func (k *Key) Number() string { return k.field(k.layout.Number) }

// IssuanceForm is "" for CF-e SAT keys.
func (k *Key) IssuanceForm() string { return k.field(k.layout.IssuanceForm) }

func (k *Key) Code() string { return k.field(k.layout.Code) }

func (k *Key) CheckDigit() int {
	return int(k.digits[k.layout.CheckDigit.Start] - '0')
}
