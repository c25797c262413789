package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
	"brfiscal/internal/metrics"
)

// KeyInfo is the decoded view of an access key.
type KeyInfo struct {
	Key          string `json:"key"`
	Prefix       string `json:"prefix,omitempty"`
	Layout       string `json:"layout"`
	UFCode       int    `json:"uf_code"`
	UF           string `json:"uf,omitempty"`
	YearMonth    string `json:"year_month"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Issuer       string `json:"issuer"`
	IssuerIsCPF  bool   `json:"issuer_is_cpf"`
	Model        string `json:"model"`
	Series       string `json:"series"`
	Number       string `json:"number"`
	IssuanceForm string `json:"issuance_form,omitempty"`
	Code         string `json:"code"`
	CheckDigit   int    `json:"check_digit"`
	Valid        bool   `json:"valid"`
	ErrorCode    string `json:"error_code,omitempty"`
	Message      string `json:"message,omitempty"`
}

// KeyService parses, builds and partitions access keys.
type KeyService interface {
	Parse(ctx context.Context, raw string) (*KeyInfo, error)
	Build(ctx context.Context, fields edoc.Fields) (*KeyInfo, error)
	Partition(ctx context.Context, raw string, n int) ([]string, error)
}

type keyService struct {
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewKeyService creates a new KeyService implementation.
func NewKeyService(m *metrics.Metrics, log zerolog.Logger) KeyService {
	return &keyService{
		metrics: m,
		log:     log.With().Str("component", "service.KeyService").Logger(),
	}
}

func describeKey(k *edoc.Key) *KeyInfo {
	info := &KeyInfo{
		Key:          k.Digits(),
		Prefix:       k.Prefix(),
		Layout:       k.Layout().Name,
		UFCode:       k.UFCode(),
		YearMonth:    k.YearMonth(),
		Year:         k.Year(),
		Month:        k.Month(),
		Issuer:       k.IssuerIDFormatted(),
		IssuerIsCPF:  k.IssuerIsCPF(),
		Model:        k.Model(),
		Series:       k.Series(),
		Number:       k.Number(),
		IssuanceForm: k.IssuanceForm(),
		Code:         k.Code(),
		CheckDigit:   k.CheckDigit(),
	}
	if state, err := k.UF(); err == nil {
		info.UF = state.Sigla
	}
	if err := k.Validate(); err != nil {
		info.ErrorCode = domain.ErrorCode(err)
		info.Message = err.Error()
	} else {
		info.Valid = true
	}
	return info
}

// Parse decodes a key. A well-formed key that fails validation is returned
// with Valid false; only a malformed key is an error.
func (s *keyService) Parse(_ context.Context, raw string) (*KeyInfo, error) {
	k, err := edoc.Parse(raw)
	s.metrics.ObserveKeyOperation("parse", err)
	if err != nil {
		return nil, err
	}
	return describeKey(k), nil
}

func (s *keyService) Build(_ context.Context, fields edoc.Fields) (*KeyInfo, error) {
	k, err := edoc.Build(fields)
	s.metrics.ObserveKeyOperation("build", err)
	if err != nil {
		return nil, err
	}
	info := describeKey(k)
	s.log.Debug().Str("key", info.Key).Bool("valid", info.Valid).Msg("access key built")
	return info, nil
}

// Partition splits a key into n groups. n must divide 44.
func (s *keyService) Partition(_ context.Context, raw string, n int) ([]string, error) {
	if n <= 0 || edoc.KeyLength%n != 0 {
		err := fmt.Errorf("%d parts do not divide a %d-digit key: %w", n, edoc.KeyLength, domain.ErrInvalidInput)
		s.metrics.ObserveKeyOperation("partition", err)
		return nil, err
	}
	k, err := edoc.Parse(raw)
	s.metrics.ObserveKeyOperation("partition", err)
	if err != nil {
		return nil, err
	}
	return k.Partition(n), nil
}
