package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidCatalog  = errors.New("invalid query catalog")
)
