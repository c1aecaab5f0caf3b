// Package throttle caps aggregate request volume per instance. It sits
// in front of the per-client limiter so a traffic flood sheds load
// before touching the window store.
package throttle

import (
	"golang.org/x/time/rate"
)

// Throttle is a token-bucket cap on total requests handled by this
// instance. It is process-local on purpose; a shared cap would make
// the overload guard depend on the store it is meant to protect.
type Throttle struct {
	limiter *rate.Limiter
}

// New creates a throttle admitting rps requests per second with the
// given burst headroom. A non-positive rps disables the throttle.
func New(rps, burst int) *Throttle {
	if rps <= 0 {
		return &Throttle{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	if burst < rps {
		burst = rps
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

// Allow reports whether the instance has capacity for one more request.
func (t *Throttle) Allow() bool {
	return t.limiter.Allow()
}
