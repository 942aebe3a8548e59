package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalog "github.com/okian/theta/internal/adapters/catalog"
	repository "github.com/okian/theta/internal/adapters/repository"
	app "github.com/okian/theta/internal/app"
	"github.com/okian/theta/internal/config"
	"github.com/okian/theta/pkg/logger"
	"github.com/okian/theta/pkg/metrics"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Initialize logging
	if err := logger.Init(); err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		_ = logger.Sync()
	}()

	loggerInstance := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return 1
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel))
		_ = logger.SetLevelString("info")
	}

	// Load the ordered item catalog.
	inputs, err := catalog.Load(ctx, cfg.Catalog)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load catalog",
			logger.String("catalog", cfg.Catalog),
			logger.Error(err),
		)
		return 1
	}

	// Run the calibration pipeline.
	svc := app.New(
		app.WithLogger(loggerInstance),
		app.WithSeed(cfg.Seed),
		app.WithPopulationSize(cfg.PopulationSize),
		app.WithQuantileStep(cfg.QuantileStep),
		app.WithWorkerCount(cfg.WorkerCount),
		app.WithVersionTag(cfg.VersionTag),
	)
	artifact, err := svc.Run(ctx, inputs)
	if err != nil {
		loggerInstance.Error(ctx, "calibration run failed", logger.Error(err))
		exportMetrics(ctx, loggerInstance, cfg.MetricsTextfile)
		return 1
	}

	// Persist the artifact.
	start := time.Now()
	store := repository.NewFileStore(cfg.Output)
	err = store.Write(ctx, artifact)
	metrics.RecordStageDuration("write", float64(time.Since(start).Milliseconds()))
	if err != nil {
		loggerInstance.Error(ctx, "failed to write artifact",
			logger.String("output", cfg.Output),
			logger.Error(err),
		)
		exportMetrics(ctx, loggerInstance, cfg.MetricsTextfile)
		return 1
	}

	loggerInstance.Info(ctx, "artifact written",
		logger.String("output", cfg.Output),
		logger.String("runId", artifact.RunID),
		logger.Int("items", len(artifact.QuestionIDs)),
		logger.Int("quantiles", len(artifact.ThetaQuantiles)),
	)

	exportMetrics(ctx, loggerInstance, cfg.MetricsTextfile)
	return 0
}

// exportMetrics dumps final metric state for the node_exporter textfile
// collector when a path is configured. Best effort; failures are logged and
// do not change the exit code.
func exportMetrics(ctx context.Context, l logger.Logger, path string) {
	if path == "" {
		return
	}
	if err := metrics.ExportTextfile(path); err != nil {
		l.Warn(ctx, "failed to export metrics textfile",
			logger.String("path", path),
			logger.Error(err),
		)
		return
	}
	l.Info(ctx, "metrics exported", logger.String("path", path))
}
