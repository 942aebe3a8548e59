// Package service orchestrates the offline calibration pipeline: item
// calibration, population simulation and quantile table construction.
package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	calibrate "github.com/okian/theta/internal/domain/calibrate"
	model "github.com/okian/theta/internal/domain/model"
	population "github.com/okian/theta/internal/domain/population"
	quantile "github.com/okian/theta/internal/domain/quantile"
	"github.com/okian/theta/pkg/logger"
	"github.com/okian/theta/pkg/metrics"
)

// Default pipeline configuration.
const (
	defaultSeed           = 4242
	defaultPopulationSize = 200_000
	defaultQuantileStep   = 0.1
	defaultVersionTag     = "v4-2pl-empirical-cdf"
)

// Service runs the calibration pipeline end to end.
type Service struct {
	seed           int64
	populationSize int
	quantileStep   float64
	workerCount    int
	versionTag     string
	logger         logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSeed sets the master seed for ability draws and response sampling.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithPopulationSize sets the number of synthetic respondents.
func WithPopulationSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.populationSize = size
		}
	}
}

// WithQuantileStep sets the percentile resolution of the output table.
func WithQuantileStep(step float64) Option {
	return func(s *Service) {
		if step > 0 {
			s.quantileStep = step
		}
	}
}

// WithWorkerCount sets the number of simulation worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithVersionTag sets the artifact version tag.
func WithVersionTag(tag string) Option {
	return func(s *Service) {
		if tag != "" {
			s.versionTag = tag
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		seed:           defaultSeed,
		populationSize: defaultPopulationSize,
		quantileStep:   defaultQuantileStep,
		workerCount:    runtime.NumCPU(),
		versionTag:     defaultVersionTag,
		logger:         nil, // resolved lazily in Run
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes the pipeline over the given item inputs and returns the
// assembled calibration artifact. The output is deterministic for a given
// seed, population size and quantile step, regardless of worker count.
func (s *Service) Run(ctx context.Context, inputs []model.ItemInput) (model.Artifact, error) {
	if s.logger == nil {
		s.logger = logger.Get()
	}

	runID := uuid.NewString()
	s.logger.Info(ctx, "starting calibration run",
		logger.String("runId", runID),
		logger.String("version", s.versionTag),
		logger.Int("items", len(inputs)),
		logger.Int64("seed", s.seed),
		logger.Int("populationSize", s.populationSize),
		logger.Float64("quantileStep", s.quantileStep),
		logger.Int("workers", s.workerCount),
	)

	items, err := s.calibrateStage(ctx, inputs)
	if err != nil {
		metrics.RecordPipelineError()
		return model.Artifact{}, err
	}

	abilities, err := s.simulateStage(ctx, items)
	if err != nil {
		metrics.RecordPipelineError()
		return model.Artifact{}, err
	}

	table, err := s.quantileStage(ctx, abilities)
	if err != nil {
		metrics.RecordPipelineError()
		return model.Artifact{}, err
	}

	artifact := s.assemble(runID, items, table)
	metrics.RecordPipelineRun()
	s.logger.Info(ctx, "calibration run complete",
		logger.String("runId", runID),
		logger.Int("quantiles", len(artifact.ThetaQuantiles)),
	)
	return artifact, nil
}

// calibrateStage derives 2PL parameters for every item.
func (s *Service) calibrateStage(ctx context.Context, inputs []model.ItemInput) ([]model.Item, error) {
	start := time.Now()
	items, err := calibrate.Calibrate(ctx, inputs)
	metrics.RecordStageDuration("calibrate", float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordCalibrationError()
		return nil, fmt.Errorf("calibration stage: %w", err)
	}
	for range items {
		metrics.RecordItemCalibrated()
	}

	s.logger.Info(ctx, "items calibrated",
		logger.Int("count", len(items)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return items, nil
}

// simulateStage draws the synthetic population and estimates abilities.
func (s *Service) simulateStage(ctx context.Context, items []model.Item) ([]float64, error) {
	start := time.Now()
	sim := population.NewSimulator(items,
		population.WithSeed(s.seed),
		population.WithPopulationSize(s.populationSize),
		population.WithWorkerCount(s.workerCount),
	)
	abilities, err := sim.Run(ctx)
	metrics.RecordStageDuration("simulate", float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("simulation stage: %w", err)
	}

	s.logger.Info(ctx, "population simulated",
		logger.Int("respondents", len(abilities)),
		logger.Duration("elapsed", time.Since(start)),
	)
	return abilities, nil
}

// quantileStage builds the percentile-to-theta lookup table.
func (s *Service) quantileStage(ctx context.Context, abilities []float64) (*quantile.Table, error) {
	start := time.Now()
	table, err := quantile.Build(abilities, s.quantileStep)
	metrics.RecordStageDuration("quantiles", float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, fmt.Errorf("quantile stage: %w", err)
	}
	metrics.UpdateQuantileTableSize(table.Len())

	s.logger.Info(ctx, "quantile table built",
		logger.Int("entries", table.Len()),
		logger.Duration("elapsed", time.Since(start)),
	)
	return table, nil
}

// assemble packs stage outputs into the serializable artifact.
func (s *Service) assemble(runID string, items []model.Item, table *quantile.Table) model.Artifact {
	artifact := model.Artifact{
		Version:         s.versionTag,
		GeneratedAt:     time.Now().UTC().Format("2006-01-02"),
		RunID:           runID,
		Seed:            s.seed,
		PopulationSize:  s.populationSize,
		QuantileStep:    s.quantileStep,
		QuestionIDs:     make([]string, len(items)),
		Probabilities:   make([]float64, len(items)),
		Discriminations: make([]float64, len(items)),
		Difficulties:    make([]float64, len(items)),
		ThetaQuantiles:  table.Values,
	}
	for i, item := range items {
		artifact.QuestionIDs[i] = item.ID
		artifact.Probabilities[i] = item.Probability
		artifact.Discriminations[i] = item.Discrimination
		artifact.Difficulties[i] = item.Difficulty
	}
	return artifact
}
