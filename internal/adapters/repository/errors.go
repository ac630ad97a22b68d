package repository

import "errors"

// Sentinel kinds for dataset loading errors.
var (
	// ErrMissingColumn means a loaded table lacks a column its view needs.
	ErrMissingColumn = errors.New("missing column")
)
