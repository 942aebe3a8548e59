package repository

import "errors"

// Sentinel kinds for artifact store errors.
var (
	ErrNotFound     = errors.New("artifact not found")
	ErrWriteFailed  = errors.New("artifact write failed")
	ErrDecodeFailed = errors.New("artifact decode failed")
)
