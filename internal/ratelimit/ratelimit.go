package ratelimit

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Delayer blocks for a bot-detection-safe interval.
type Delayer interface {
	Delay(ctx context.Context) error
}

// JitterDelay sleeps a random duration between min and max on every call.
// The jitter matters more than the length: a fixed post-navigation delay is
// itself a bot signature.
type JitterDelay struct {
	min time.Duration
	max time.Duration
	mu  sync.Mutex
	rng *rand.Rand
}

func NewJitterDelay(min, max time.Duration) *JitterDelay {
	if max < min {
		max = min
	}
	return &JitterDelay{
		min: min,
		max: max,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (d *JitterDelay) Delay(ctx context.Context) error {
	d.mu.Lock()
	wait := d.min
	if d.max > d.min {
		wait += time.Duration(d.rng.Int63n(int64(d.max - d.min)))
	}
	d.mu.Unlock()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}

// NoDelay skips waiting entirely; used by tests.
type NoDelay struct{}

func (NoDelay) Delay(context.Context) error { return nil }
