package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"brfiscal/internal/cli"
	"brfiscal/internal/config"
	"brfiscal/internal/logger"
	"brfiscal/internal/metrics"
	"brfiscal/internal/port"
	"brfiscal/internal/service"
	s3storage "brfiscal/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, cli.ErrInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := logger.New(cfg.Log)
	m := metrics.New(prometheus.NewRegistry())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		if storage, err = s3storage.NewS3Client(ctx, &cfg.S3); err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	}

	identifiers := service.NewIdentifierService(m, log, time.Now)
	root := cli.NewRootCmd(cli.Services{
		Identifiers: identifiers,
		Keys:        service.NewKeyService(m, log),
		Batches:     service.NewBatchService(identifiers, storage, cfg.S3, cfg.Report, m, log),
	})
	root.SilenceErrors = true
	return root.ExecuteContext(ctx)
}
