package serve

import (
	"golang.org/x/time/rate"
)

// LimitConfig describes a token-bucket rate for client ops.
type LimitConfig struct {
	Burst int        `json:"b"`
	Rate  rate.Limit `json:"r"`
}

func buildLimiter(lc *LimitConfig) *rate.Limiter {
	if lc == nil {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(lc.Rate, lc.Burst)
}
