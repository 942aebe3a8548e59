// Package catalog reads the ordered question catalog the pipeline
// calibrates against. The file is a YAML list so the item order, which
// fixes the index correspondence in the output artifact, survives parsing.
package catalog

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	model "github.com/okian/theta/internal/domain/model"
)

// entry is one catalog row on disk.
type entry struct {
	ID          string  `yaml:"id"`
	Probability float64 `yaml:"probability"`
}

// Load reads and validates the catalog at path, returning the ordered
// item inputs. Validation failures here are configuration errors: they
// abort the pipeline before any simulation runs.
func Load(ctx context.Context, path string) ([]model.ItemInput, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("catalog load canceled: %w", ctx.Err())
	default:
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadCatalog, err)
	}

	var entries []entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCatalog, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCatalog, path)
	}

	seen := make(map[string]struct{}, len(entries))
	inputs := make([]model.ItemInput, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrMissingID, i)
		}
		if _, dup := seen[e.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
		}
		seen[e.ID] = struct{}{}

		if e.Probability <= 0 || e.Probability >= 1 {
			return nil, fmt.Errorf("%w: item %q has probability %g", ErrProbabilityRange, e.ID, e.Probability)
		}
		inputs[i] = model.ItemInput{ID: e.ID, Probability: e.Probability}
	}
	return inputs, nil
}
