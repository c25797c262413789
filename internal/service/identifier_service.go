package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
	"brfiscal/internal/fiscal"
	"brfiscal/internal/fiscal/ie"
	"brfiscal/internal/gs1"
	"brfiscal/internal/metrics"
)

// IdentifierService validates and formats single identifiers and lists of them.
type IdentifierService interface {
	Validate(ctx context.Context, in domain.IdentifierInput) (*domain.IdentifierResult, error)
	Format(ctx context.Context, in domain.IdentifierInput) (string, error)
	ValidateBatch(ctx context.Context, inputs []domain.IdentifierInput) (*domain.BatchResult, error)
}

type identifierService struct {
	metrics *metrics.Metrics
	log     zerolog.Logger
	now     func() time.Time
}

// NewIdentifierService creates a new IdentifierService implementation. now
// dates RECOPI checks; nil means time.Now.
func NewIdentifierService(m *metrics.Metrics, log zerolog.Logger, now func() time.Time) IdentifierService {
	if now == nil {
		now = time.Now
	}
	return &identifierService{
		metrics: m,
		log:     log.With().Str("component", "service.IdentifierService").Logger(),
		now:     now,
	}
}

// check returns the checker for in. Strict only changes the kinds that accept
// masks.
func (s *identifierService) check(in domain.IdentifierInput) (func(string) error, error) {
	switch in.Kind {
	case domain.KindCNPJ:
		if in.Strict {
			return fiscal.CheckCNPJStrict, nil
		}
		return fiscal.CheckCNPJ, nil
	case domain.KindCPF:
		if in.Strict {
			return fiscal.CheckCPFStrict, nil
		}
		return fiscal.CheckCPF, nil
	case domain.KindCNPJOrCPF:
		if in.Strict {
			return fiscal.CheckCNPJOrCPFStrict, nil
		}
		return fiscal.CheckCNPJOrCPF, nil
	case domain.KindCEP:
		if in.Strict {
			return fiscal.CheckCEPStrict, nil
		}
		return fiscal.CheckCEP, nil
	case domain.KindIE:
		return func(v string) error { return ie.Check(in.UF, v) }, nil
	case domain.KindGTIN:
		return gs1.CheckGTIN, nil
	case domain.KindSSCC:
		return gs1.CheckSSCC, nil
	case domain.KindGSIN:
		return gs1.CheckGSIN, nil
	case domain.KindBACEN:
		return fiscal.CheckBACEN, nil
	case domain.KindSUFRAMA:
		return fiscal.CheckSUFRAMA, nil
	case domain.KindPISPASEP:
		return fiscal.CheckPISPASEP, nil
	case domain.KindMunicipality:
		return fiscal.CheckMunicipality, nil
	case domain.KindRECOPI:
		return func(v string) error { return fiscal.CheckRECOPI(v, s.now()) }, nil
	case domain.KindAccessKey:
		return func(v string) error {
			_, err := edoc.ParseAndValidate(v)
			return err
		}, nil
	default:
		return nil, fmt.Errorf("kind %q: %w", in.Kind, domain.ErrUnsupportedKind)
	}
}

func format(in domain.IdentifierInput) string {
	switch in.Kind {
	case domain.KindCNPJ:
		return fiscal.FormatCNPJ(in.Value)
	case domain.KindCPF:
		return fiscal.FormatCPF(in.Value)
	case domain.KindCNPJOrCPF:
		return fiscal.FormatCNPJOrCPF(in.Value)
	case domain.KindCEP:
		return fiscal.FormatCEP(in.Value)
	case domain.KindIE:
		return ie.Format(in.UF, in.Value)
	case domain.KindMunicipality:
		return fiscal.FormatMunicipality(in.Value)
	case domain.KindAccessKey:
		k, err := edoc.Parse(in.Value)
		if err != nil {
			return in.Value
		}
		return strings.Join(k.Partition(11), " ")
	default:
		return in.Value
	}
}

func (s *identifierService) Validate(_ context.Context, in domain.IdentifierInput) (*domain.IdentifierResult, error) {
	check, err := s.check(in)
	if err != nil {
		return nil, err
	}
	res := s.run(in, check)
	return &res, nil
}

func (s *identifierService) run(in domain.IdentifierInput, check func(string) error) domain.IdentifierResult {
	res := domain.IdentifierResult{Kind: in.Kind, Value: in.Value, UF: strings.ToUpper(in.UF)}
	if err := check(in.Value); err != nil {
		res.ErrorCode = domain.ErrorCode(err)
		res.Message = err.Error()
	} else {
		res.Valid = true
		if in.Kind.Formattable() || in.Kind == domain.KindAccessKey {
			res.Formatted = format(in)
		}
	}
	s.metrics.ObserveIdentifier(string(in.Kind), res.Valid)
	return res
}

func (s *identifierService) Format(_ context.Context, in domain.IdentifierInput) (string, error) {
	if !in.Kind.Formattable() && in.Kind != domain.KindAccessKey {
		return "", fmt.Errorf("kind %q has no display format: %w", in.Kind, domain.ErrUnsupportedKind)
	}
	return format(in), nil
}

// ValidateBatch checks every input in order. Rows with an unsupported kind
// become invalid results; only cancellation aborts the batch.
func (s *identifierService) ValidateBatch(ctx context.Context, inputs []domain.IdentifierInput) (*domain.BatchResult, error) {
	results := make([]domain.IdentifierResult, 0, len(inputs))
	for i := range inputs {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("validating batch at row %d: %w", i+1, err)
		}
		in := inputs[i]
		check, err := s.check(in)
		if err != nil {
			results = append(results, domain.IdentifierResult{
				Kind: in.Kind, Value: in.Value, UF: strings.ToUpper(in.UF),
				ErrorCode: domain.ErrorCode(err), Message: err.Error(),
			})
			continue
		}
		results = append(results, s.run(in, check))
	}

	out := &domain.BatchResult{Results: results, Summary: domain.Summarize(results)}
	s.log.Debug().
		Int("total", out.Summary.Total).
		Int("invalid", out.Summary.Invalid).
		Msg("batch validated")
	return out, nil
}
