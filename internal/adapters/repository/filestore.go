package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	model "github.com/okian/theta/internal/domain/model"
)

// Default file permission constants.
const (
	defaultFilePermission = 0o600
	defaultDirPermission  = 0o750
)

// fixed6 serializes a float slice with fixed 6-decimal precision. The
// downstream scorer's accuracy contract is defined at this precision and
// it keeps the artifact compact and diff-stable.
type fixed6 []float64

func (f fixed6) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(f)*10+2)
	buf = append(buf, '[')
	for i, v := range f {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = strconv.AppendFloat(buf, v, 'f', 6, 64)
	}
	buf = append(buf, ']')
	return buf, nil
}

func (f *fixed6) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*f = values
	return nil
}

// artifactJSON is the on-disk layout of a calibration artifact.
type artifactJSON struct {
	Version         string   `json:"version"`
	GeneratedAt     string   `json:"generatedAt"`
	RunID           string   `json:"runId"`
	Seed            int64    `json:"seed"`
	PopulationSize  int      `json:"populationSize"`
	QuantileStep    float64  `json:"quantileStep"`
	QuestionIDs     []string `json:"questionIds"`
	Probabilities   fixed6   `json:"probabilities"`
	Discriminations fixed6   `json:"discriminations"`
	Difficulties    fixed6   `json:"difficulties"`
	ThetaQuantiles  fixed6   `json:"thetaQuantiles"`
}

// FileStore implements Store on a single JSON file.
type FileStore struct {
	path     string
	filePerm os.FileMode
	dirPerm  os.FileMode
	indent   string
}

// NewFileStore creates a file-backed artifact store at path.
func NewFileStore(path string, opts ...Option) *FileStore {
	s := &FileStore{
		path:     path,
		filePerm: defaultFilePermission,
		dirPerm:  defaultDirPermission,
		indent:   "  ",
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Write persists the artifact as JSON with 6-decimal numeric precision.
func (s *FileStore) Write(ctx context.Context, artifact model.Artifact) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("artifact write canceled: %w", ctx.Err())
	default:
	}

	wire := artifactJSON{
		Version:         artifact.Version,
		GeneratedAt:     artifact.GeneratedAt,
		RunID:           artifact.RunID,
		Seed:            artifact.Seed,
		PopulationSize:  artifact.PopulationSize,
		QuantileStep:    artifact.QuantileStep,
		QuestionIDs:     artifact.QuestionIDs,
		Probabilities:   artifact.Probabilities,
		Discriminations: artifact.Discriminations,
		Difficulties:    artifact.Difficulties,
		ThetaQuantiles:  artifact.ThetaQuantiles,
	}

	var (
		data []byte
		err  error
	)
	if s.indent != "" {
		data, err = json.MarshalIndent(wire, "", s.indent)
	} else {
		data, err = json.Marshal(wire)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, s.dirPerm); err != nil {
			return fmt.Errorf("%w: %v", ErrWriteFailed, err)
		}
	}
	if err := os.WriteFile(s.path, data, s.filePerm); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

// Read loads the artifact back from disk.
func (s *FileStore) Read(ctx context.Context) (model.Artifact, error) {
	select {
	case <-ctx.Done():
		return model.Artifact{}, fmt.Errorf("artifact read canceled: %w", ctx.Err())
	default:
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.Artifact{}, fmt.Errorf("%w: %s", ErrNotFound, s.path)
		}
		return model.Artifact{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	var wire artifactJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return model.Artifact{}, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	return model.Artifact{
		Version:         wire.Version,
		GeneratedAt:     wire.GeneratedAt,
		RunID:           wire.RunID,
		Seed:            wire.Seed,
		PopulationSize:  wire.PopulationSize,
		QuantileStep:    wire.QuantileStep,
		QuestionIDs:     wire.QuestionIDs,
		Probabilities:   wire.Probabilities,
		Discriminations: wire.Discriminations,
		Difficulties:    wire.Difficulties,
		ThetaQuantiles:  wire.ThetaQuantiles,
	}, nil
}
