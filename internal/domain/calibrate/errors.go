package calibrate

import "errors"

// Sentinel kinds for calibration errors.
var (
	ErrNoItems          = errors.New("no items to calibrate")
	ErrProbabilityRange = errors.New("probability outside (0, 1)")
)
