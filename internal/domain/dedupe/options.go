package dedupe

type options struct {
	capacity int
}

// Option applies a configuration option to a Deduper.
type Option func(*options)

// WithCapacity presizes the seen set. Values <= 0 are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
