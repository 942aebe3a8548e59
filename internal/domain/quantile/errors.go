package quantile

import "errors"

// Sentinel kinds for table-building errors.
var (
	ErrEmptySample = errors.New("empty ability sample")
	ErrInvalidStep = errors.New("invalid quantile step")
)
