package session

import "time"

// BackoffConfig defines dial retry backoff behavior.
type BackoffConfig struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	Jitter       bool
	// MaxAttempts caps dial attempts; 0 retries until the context ends.
	MaxAttempts int
}

// Config defines transport defaults.
type Config struct {
	DialTimeout time.Duration
	// ReadTimeout bounds each Receive; a listener drops peers idle longer.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Backoff      BackoffConfig
}

func DefaultConfig() Config {
	return Config{
		DialTimeout:  5 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Second,
		Backoff: BackoffConfig{
			InitialDelay: 100 * time.Millisecond,
			Multiplier:   2.0,
			MaxDelay:     5 * time.Second,
			Jitter:       true,
			MaxAttempts:  8,
		},
	}
}
