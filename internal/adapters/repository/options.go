package repository

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithLookupMetrics toggles per-lookup metrics. They are on by default; the
// CLI turns them off for one-shot queries.
func WithLookupMetrics(enabled bool) Option {
	return func(s *MemStore) {
		s.recordLookups = enabled
	}
}
