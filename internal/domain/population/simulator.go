// Package population simulates a synthetic respondent population under a
// calibrated 2PL model and collects one MAP ability estimate per
// respondent.
package population

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	estimate "github.com/okian/theta/internal/domain/estimate"
	model "github.com/okian/theta/internal/domain/model"
	twopl "github.com/okian/theta/internal/domain/twopl"
	"github.com/okian/theta/pkg/metrics"
)

// Default simulation configuration constants.
const (
	defaultSeed            = 4242
	defaultPopulationSize  = 200_000
	indexChannelMultiplier = 4 // buffer per worker on the index feed
)

// Option applies a configuration option to the Simulator.
type Option func(*Simulator)

// WithSeed sets the simulation seed.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.seed = seed
	}
}

// WithPopulationSize sets the number of simulated respondents.
func WithPopulationSize(size int) Option {
	return func(s *Simulator) {
		if size > 0 {
			s.size = size
		}
	}
}

// WithWorkerCount sets the number of simulation workers.
func WithWorkerCount(count int) Option {
	return func(s *Simulator) {
		if count > 0 {
			s.workers = count
		}
	}
}

// Simulator draws respondents with standard-normal latent ability and
// simulates their item responses under the calibrated model. Each
// respondent owns an order-indexed random substream, so the result slice
// is a pure function of (items, seed, size).
type Simulator struct {
	items   []model.Item
	seed    int64
	size    int
	workers int
}

// NewSimulator creates a simulator for the given calibrated items.
func NewSimulator(items []model.Item, opts ...Option) *Simulator {
	s := &Simulator{
		items:   items,
		seed:    defaultSeed,
		size:    defaultPopulationSize,
		workers: runtime.NumCPU(),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run simulates the population and returns the MAP ability estimate per
// respondent, indexed by respondent. Respondents are fanned out across
// the worker pool; honors ctx for cancellation.
func (s *Simulator) Run(ctx context.Context) ([]float64, error) {
	if len(s.items) == 0 {
		return nil, ErrNoItems
	}

	estimates := make([]float64, s.size)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	metrics.UpdateWorkerCount(s.workers)

	indexCh := make(chan int, s.workers*indexChannelMultiplier)
	for w := 0; w < s.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for index := range indexCh {
				select {
				case <-runCtx.Done():
					return
				default:
				}
				if err := s.simulateRespondent(index, estimates); err != nil {
					fail(err)
					return
				}
			}
		}()
	}

feed:
	for i := 0; i < s.size; i++ {
		select {
		case indexCh <- i:
		case <-runCtx.Done():
			break feed
		}
	}
	close(indexCh)
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("simulation canceled: %w", err)
	}

	metrics.RecordRespondentsSimulated(s.size)
	return estimates, nil
}

// simulateRespondent draws one respondent's ability and responses from its
// substream and records the MAP estimate. The substream consumption order
// is fixed: one ability draw, then one uniform per item in input order.
func (s *Simulator) simulateRespondent(index int, out []float64) error {
	rng := newSubstream(s.seed, index)

	theta := normal(rng)
	answers := make([]bool, len(s.items))
	for j, item := range s.items {
		answers[j] = rng.Float64() < twopl.Prob(item.Discrimination, item.Difficulty, theta)
	}

	res, err := estimate.MAP(answers, s.items)
	if err != nil {
		return fmt.Errorf("respondent %d: %w", index, err)
	}
	metrics.RecordEstimationIterations(res.Iterations)

	out[index] = res.Theta
	return nil
}
