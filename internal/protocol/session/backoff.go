package session

import (
	"math"
	"math/rand"
	"time"
)

// NextBackoffDelay returns how long Dial waits after failed attempt N
// (1-based) before trying attempt N+1. The delay grows by Multiplier from
// InitialDelay, is capped by MaxDelay when set, and never exceeds the
// largest time.Duration.
func NextBackoffDelay(cfg BackoffConfig, attempt int, rng *rand.Rand) time.Duration {
	if attempt <= 1 {
		return cfg.InitialDelay
	}
	if cfg.InitialDelay <= 0 {
		return 0
	}
	if cfg.Multiplier < 1.0 {
		cfg.Multiplier = 1.0
	}
	delay := float64(cfg.InitialDelay) * math.Pow(cfg.Multiplier, float64(attempt-1))
	if cfg.MaxDelay > 0 && delay > float64(cfg.MaxDelay) {
		delay = float64(cfg.MaxDelay)
	}
	if cfg.Jitter {
		f := 0.5
		if rng != nil {
			f = 0.5 + rng.Float64()
		}
		delay = delay * f
	}
	// float64(math.MaxInt64) rounds up to 2^63, so >= catches the overflow.
	if math.IsNaN(delay) || delay >= float64(math.MaxInt64) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(delay)
}

// attemptsLeft reports whether Dial may make another attempt after n have
// failed. MaxAttempts <= 0 means no limit.
func (cfg BackoffConfig) attemptsLeft(n int) bool {
	return cfg.MaxAttempts <= 0 || n < cfg.MaxAttempts
}
