package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"brfiscal/internal/config"
	"brfiscal/internal/handler"
	"brfiscal/internal/logger"
	"brfiscal/internal/metrics"
	"brfiscal/internal/port"
	"brfiscal/internal/router"
	"brfiscal/internal/service"
	s3storage "brfiscal/internal/storage/s3"
	"brfiscal/internal/validator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if err := handler.RegisterFiscalValidators(); err != nil {
		return fmt.Errorf("failed to register request validators: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize storage
	var storage port.ObjectStorage
	if cfg.S3.Enabled() {
		storage, err = s3storage.NewS3Client(ctx, &cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Msg("report archive enabled")
	}

	// Initialize services
	engine := validator.NewEngine(validator.NewDefaultRegistry(), log)
	identifierSvc := service.NewIdentifierService(m, log, time.Now)
	keySvc := service.NewKeyService(m, log)
	documentSvc := service.NewDocumentService(engine, m, log)
	batchSvc := service.NewBatchService(identifierSvc, storage, cfg.S3, cfg.Report, m, log)

	// Setup router
	r := router.Setup(cfg, log, m, reg, router.Handlers{
		Health:     handler.NewHealthHandler(engine),
		Identifier: handler.NewIdentifierHandler(identifierSvc),
		UF:         handler.NewUFHandler(),
		Key:        handler.NewKeyHandler(keySvc),
		Document:   handler.NewDocumentHandler(documentSvc),
		Batch:      handler.NewBatchHandler(batchSvc, cfg.Report.MaxUploadSizeMB),
		GS1:        handler.NewGS1Handler(),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
	return serve(ctx, srv, cfg.Server.ShutdownTimeout, log)
}

func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, log zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}
