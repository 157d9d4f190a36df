package registry

import "time"

type Config struct {
	RetryBaseDelay time.Duration `env:"REGISTRY_RETRY_BASE_DELAY" envDefault:"50ms"`  // RetryBaseDelay is multiplied by the attempt number to compute the backoff delay.
	RetryMaxDelay  time.Duration `env:"REGISTRY_RETRY_MAX_DELAY" envDefault:"500ms"`  // RetryMaxDelay caps the backoff delay between connect attempts.
	MaxAttempts    int           `env:"REGISTRY_MAX_CONNECT_ATTEMPTS" envDefault:"10"` // MaxAttempts limits connect attempts; 0 retries until the context is cancelled.
	DialTimeout    time.Duration `env:"REGISTRY_DIAL_TIMEOUT" envDefault:"5s"`        // DialTimeout bounds a single connection attempt.
}

func (c Config) withDefaults() Config {
	if c.RetryBaseDelay <= 0 {
		c.RetryBaseDelay = 50 * time.Millisecond
	}
	if c.RetryMaxDelay <= 0 {
		c.RetryMaxDelay = 500 * time.Millisecond
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = 5 * time.Second
	}
	return c
}

// backoff returns the delay before the given 1-based attempt is retried:
// min(attempt * RetryBaseDelay, RetryMaxDelay).
func (c Config) backoff(attempt int) time.Duration {
	d := time.Duration(attempt) * c.RetryBaseDelay
	if d > c.RetryMaxDelay {
		d = c.RetryMaxDelay
	}
	return d
}
