package middleware

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/dtg01100/vacation-calendar-updater/pkg/log"
)

type Middleware struct {
	l        log.Logger
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

// New creates the middleware bundle. requestsPerMin <= 0 disables rate
// limiting.
func New(l log.Logger, requestsPerMin int) Middleware {
	mw := Middleware{l: l}
	if requestsPerMin > 0 {
		mw.limiters = expirable.NewLRU[string, *rate.Limiter](
			1000,          // Max 1000 unique clients
			nil,           // No eviction callback
			time.Minute*5, // TTL: 5 minutes
		)
		mw.rate = rate.Limit(float64(requestsPerMin) / 60.0) // Per second
		mw.burst = requestsPerMin / 10
		if mw.burst < 1 {
			mw.burst = 1
		}
	}
	return mw
}
