package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studynotes/analysis"
	"studynotes/api"
	"studynotes/config"
	"studynotes/document"
	"studynotes/youtube"
)

// runServer serves the API until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Info("configuration loaded", slog.Any("config", cfg))

	store, err := newStore(ctx, cfg)
	if err != nil {
		return err
	}

	generator, err := analysis.NewGenerator(cfg.GeneratorConfig())
	if err != nil {
		return err
	}

	composer, err := document.NewComposer(cfg.PDFFontPath)
	if err != nil {
		return err
	}

	scraper := youtube.NewScraper(
		youtube.WithLanguages(cfg.TranscriptLangs),
		youtube.WithLogger(logger),
	)

	gin.SetMode(gin.ReleaseMode)
	router := api.NewRouter(api.Services{
		Transcripts: youtube.NewFetcher(scraper, cfg.TranscriptTimeout, logger),
		Analyzer:    analysis.NewTransformer(generator, cfg.GenerationTimeout, logger),
		Documents:   document.NewRenderer(store, cfg.RenderTimeout, logger, document.WithComposer(composer)),
		Logger:      logger,
	})

	var janitor *document.Janitor
	if sweeper, ok := store.(document.Sweeper); ok {
		janitor, err = document.NewJanitor(sweeper, cfg.JanitorSchedule, cfg.ArtifactMaxAge, logger)
		if err != nil {
			return err
		}
		janitor.RunOnce(ctx)
		janitor.Start()
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting API server",
			slog.String("addr", srv.Addr),
			slog.String("model", generator.Model()),
		)
		logger.Info("API endpoints available",
			slog.Any("routes", []string{
				"GET  /api/health",
				"GET  /api/transcript?url=",
				"POST /api/analyze-transcript",
				"POST /api/download-analyzed-pdf",
			}),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if janitor != nil {
			janitor.Stop(context.Background())
		}
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
	defer cancel()

	if janitor != nil {
		janitor.Stop(shutdownCtx)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newStore picks the artifact store named by ARTIFACT_STORE.
func newStore(ctx context.Context, cfg *config.Config) (document.Store, error) {
	switch cfg.ArtifactStore {
	case config.StoreS3:
		initCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return document.NewS3Store(initCtx, document.S3Config{
			Bucket:       cfg.S3Bucket,
			Prefix:       cfg.S3Prefix,
			Region:       cfg.S3Region,
			Profile:      cfg.S3Profile,
			UsePathStyle: cfg.S3UsePathStyle,
		})
	default:
		return document.NewLocalStore(cfg.DownloadsDir)
	}
}
