// Package repository persists calibration artifacts for the downstream
// runtime scorer and reads them back for verification.
package repository

import (
	"context"

	model "github.com/okian/theta/internal/domain/model"
)

// Store provides read/write access to a calibration artifact.
type Store interface {
	// Write persists the artifact, replacing any previous one.
	Write(ctx context.Context, artifact model.Artifact) error

	// Read loads the artifact back.
	// Returns ErrNotFound if none has been written.
	Read(ctx context.Context) (model.Artifact, error)
}
