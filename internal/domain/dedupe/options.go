package dedupe

// Option configures the in-memory deduper.
type Option func(*inMemoryDeduper)

// WithMaxSize bounds how many IDs are remembered. Zero or negative keeps
// every ID.
func WithMaxSize(maxSize int) Option {
	return func(d *inMemoryDeduper) {
		d.maxSize = maxSize
	}
}
