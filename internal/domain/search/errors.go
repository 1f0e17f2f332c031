package search

import "errors"

// Sentinel kinds for search errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
)
