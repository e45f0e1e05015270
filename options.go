package batch

import "golang.org/x/exp/slog"

const (
	bufferSize = 128
)

type config struct {
	size   int
	limit  int
	logger *slog.Logger
}

// Option configures the producers constructed by this package.
type Option func(*config)

// BatchSize sets the number of values computed per resume cycle. A size of 1
// disables batching. Sizes lower than 1 are a programming error.
func BatchSize(size int) Option {
	if size < 1 {
		violate("batch size must be at least 1")
	}
	return func(c *config) { c.size = size }
}

// Limit bounds the number of values a producer computes before completing.
func Limit(n int) Option {
	if n < 0 {
		violate("limit must not be negative")
	}
	return func(c *config) { c.limit = n }
}

// Logger sets the logger receiving resume cycle records.
func Logger(logger *slog.Logger) Option {
	return func(c *config) { c.logger = logger }
}

func makeConfig(options []Option) config {
	c := config{size: bufferSize, limit: -1}
	for _, opt := range options {
		opt(&c)
	}
	return c
}
