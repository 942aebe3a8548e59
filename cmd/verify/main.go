// Command verify checks a calibration artifact for internal consistency.
// It re-derives item parameters from the stored probabilities and validates
// the quantile table, exiting non-zero if any check fails.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	repository "github.com/okian/theta/internal/adapters/repository"
	verify "github.com/okian/theta/internal/verify"
	"github.com/okian/theta/pkg/logger"
)

const defaultVerifyTimeout = 1 * time.Minute

func main() {
	var (
		artifactPath = flag.String("artifact", "calibration.json", "Path to the calibration artifact")
		logLevel     = flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	)
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if err := logger.SetLevelString(*logLevel); err != nil {
		_ = logger.SetLevelString("info")
	}
	l := logger.Get()

	ctx, cancel := context.WithTimeout(context.Background(), defaultVerifyTimeout)
	defer cancel()

	store := repository.NewFileStore(*artifactPath)
	artifact, err := store.Read(ctx)
	if err != nil {
		l.Error(ctx, "failed to read artifact",
			logger.String("artifact", *artifactPath),
			logger.Error(err),
		)
		os.Exit(1)
	}

	l.Info(ctx, "verifying artifact",
		logger.String("artifact", *artifactPath),
		logger.String("version", artifact.Version),
		logger.String("runId", artifact.RunID),
		logger.Int("items", len(artifact.QuestionIDs)),
		logger.Int("quantiles", len(artifact.ThetaQuantiles)),
	)

	failures := verify.Artifact(artifact)
	for _, f := range failures {
		l.Error(ctx, "check failed",
			logger.String("check", f.Check),
			logger.String("detail", f.Detail),
		)
	}
	if len(failures) > 0 {
		l.Error(ctx, "artifact verification failed", logger.Int("failures", len(failures)))
		os.Exit(1)
	}

	l.Info(ctx, "artifact verified")
}
