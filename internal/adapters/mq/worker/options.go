package worker

import "github.com/okian/skillswap/pkg/logger"

// Option applies a configuration option to a Worker.
type Option func(*Worker)

// WithName sets the worker name used in logs.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}
