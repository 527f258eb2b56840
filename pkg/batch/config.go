package batch

import (
	"fmt"
	"time"
)

// Config holds batch executor configuration
type Config struct {
	// MaxConcurrency is the maximum number of in-flight worker calls at
	// any instant, across the whole run
	MaxConcurrency int

	// BatchSize is how many unique items are processed per group before
	// the inter-group pause
	BatchSize int

	// InterBatchDelay is the pause between groups. It exists to stay
	// under the upstream's rate limit even when MaxConcurrency alone
	// would not; it is skipped after the final group.
	InterBatchDelay time.Duration
}

// DefaultConfig returns safe defaults for a rate-limited upstream.
func DefaultConfig() Config {
	return Config{
		MaxConcurrency:  5,
		BatchSize:       10,
		InterBatchDelay: 100 * time.Millisecond,
	}
}

// Validate rejects configurations that cannot run. Invalid values surface
// immediately to the caller instead of being silently coerced.
func (c Config) Validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("invalid batch config: max concurrency must be >= 1 (got %d)", c.MaxConcurrency)
	}
	if c.BatchSize < 1 {
		return fmt.Errorf("invalid batch config: batch size must be >= 1 (got %d)", c.BatchSize)
	}
	if c.InterBatchDelay < 0 {
		return fmt.Errorf("invalid batch config: inter-batch delay must be >= 0 (got %v)", c.InterBatchDelay)
	}
	return nil
}
