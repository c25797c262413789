package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"brfiscal/internal/config"
	"brfiscal/internal/domain"
	"brfiscal/internal/metrics"
	"brfiscal/internal/port"
	"brfiscal/internal/report"
)

// BatchInput is an uploaded batch file and how to report on it.
type BatchInput struct {
	Filename     string
	Body         io.Reader
	ReportFormat domain.ReportFormat
	DefaultKind  domain.IdentifierKind
	DefaultUF    string
	Archive      bool
}

// BatchOutput holds the results, the rendered report and its metadata.
type BatchOutput struct {
	Result   *domain.BatchResult
	Report   []byte
	Artifact domain.ReportArtifact
}

// BatchService validates CSV/XLSX batch files and renders reports.
type BatchService interface {
	Process(ctx context.Context, input BatchInput) (*BatchOutput, error)
}

type batchService struct {
	identifiers IdentifierService
	storage     port.ObjectStorage
	s3Cfg       config.S3Config
	reportCfg   config.ReportConfig
	locale      language.Tag
	metrics     *metrics.Metrics
	log         zerolog.Logger
	now         func() time.Time
}

// NewBatchService creates a new BatchService implementation. storage may be
// nil, in which case archive requests fail with domain.ErrArchiveDisabled.
func NewBatchService(
	identifiers IdentifierService,
	storage port.ObjectStorage,
	s3Cfg config.S3Config,
	reportCfg config.ReportConfig,
	m *metrics.Metrics,
	log zerolog.Logger,
) BatchService {
	locale, err := language.Parse(reportCfg.Locale)
	if err != nil {
		locale = language.BrazilianPortuguese
	}
	return &batchService{
		identifiers: identifiers,
		storage:     storage,
		s3Cfg:       s3Cfg,
		reportCfg:   reportCfg,
		locale:      locale,
		metrics:     m,
		log:         log.With().Str("component", "service.BatchService").Logger(),
		now:         time.Now,
	}
}

func (s *batchService) Process(ctx context.Context, input BatchInput) (*BatchOutput, error) {
	start := time.Now()

	if input.Archive && s.storage == nil {
		return nil, domain.ErrArchiveDisabled
	}
	inFormat, err := report.FormatFromFilename(input.Filename)
	if err != nil {
		return nil, err
	}
	outFormat := input.ReportFormat
	if outFormat == "" {
		outFormat = domain.ReportFormat(s.reportCfg.DefaultFormat)
	}
	if outFormat != domain.ReportFormatCSV && outFormat != domain.ReportFormatXLSX {
		return nil, fmt.Errorf("report format %q: %w", outFormat, domain.ErrUnsupportedFileType)
	}

	inputs, err := report.ReadBatch(input.Body, inFormat, report.ReadOptions{
		DefaultKind: input.DefaultKind,
		DefaultUF:   input.DefaultUF,
		MaxRows:     s.reportCfg.MaxRows,
	})
	if err != nil {
		return nil, err
	}

	result, err := s.identifiers.ValidateBatch(ctx, inputs)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, outFormat, result, s.locale); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}

	now := s.now().UTC()
	out := &BatchOutput{
		Result: result,
		Report: buf.Bytes(),
		Artifact: domain.ReportArtifact{
			Filename:    report.BuildFilename(input.Filename, outFormat, now),
			Format:      outFormat,
			ContentType: report.ContentType(outFormat),
			Size:        int64(buf.Len()),
			CreatedAt:   now,
		},
	}

	if input.Archive {
		if err := s.archive(ctx, out); err != nil {
			return nil, err
		}
	}

	s.metrics.ObserveBatch(result.Summary.Valid, result.Summary.Invalid, start)
	s.log.Info().
		Str("file", input.Filename).
		Int("rows", result.Summary.Total).
		Int("invalid", result.Summary.Invalid).
		Str("report", out.Artifact.Filename).
		Msg("batch processed")
	return out, nil
}

// archive uploads the report under {prefix}/{yyyy}/{mm}/{dd}/{uuid}-{filename}
// and fills Location and a presigned URL.
func (s *batchService) archive(ctx context.Context, out *BatchOutput) error {
	a := &out.Artifact
	key := path.Join(s.s3Cfg.Prefix, a.CreatedAt.Format("2006/01/02"), uuid.New().String()+"-"+a.Filename)

	uploaded, err := s.storage.Upload(ctx, port.UploadInput{
		Key:         key,
		Body:        bytes.NewReader(out.Report),
		ContentType: a.ContentType,
		Size:        a.Size,
	})
	if err != nil {
		return fmt.Errorf("archiving report: %w", err)
	}
	a.Location = uploaded.Location
	if a.Location == "" {
		a.Location = key
	}

	url, err := s.storage.GetPresignedURL(ctx, key, s.s3Cfg.PresignExpiry)
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("presigning archived report")
	} else {
		a.URL = url
	}
	s.metrics.IncrementReportsArchived()
	return nil
}
