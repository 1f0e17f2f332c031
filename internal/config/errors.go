package config

import "errors"

var (
	// ErrInvalidConfig marks a configuration that loaded but breaks an invariant.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a failure reading or decoding a configuration source.
	ErrLoadConfig = errors.New("load config failed")
)
