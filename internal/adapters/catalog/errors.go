package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrReadCatalog      = errors.New("read catalog failed")
	ErrParseCatalog     = errors.New("parse catalog failed")
	ErrEmptyCatalog     = errors.New("catalog has no items")
	ErrMissingID        = errors.New("catalog entry missing id")
	ErrDuplicateID      = errors.New("duplicate question id")
	ErrProbabilityRange = errors.New("probability outside (0, 1)")
)
