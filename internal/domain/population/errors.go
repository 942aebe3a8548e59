package population

import "errors"

// Sentinel kinds for simulation errors.
var (
	ErrNoItems = errors.New("no calibrated items to simulate")
)
