package estimate

import "errors"

// Sentinel kinds for estimation errors.
var (
	ErrPatternMismatch     = errors.New("response pattern length does not match items")
	ErrDegenerateCurvature = errors.New("log-posterior curvature not negative")
)
