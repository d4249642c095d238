package riot

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// Rate limits for dev key (using conservative values to be safe)
	DefaultRequestsPerSecond = 15 // Actual: 20
	DefaultRequestsPer2Min   = 90 // Actual: 100
)

// rateLimiter tracks request timestamps in a one-second and a two-minute window
type rateLimiter struct {
	perSecond int
	per2Min   int
	log       zerolog.Logger

	mu          sync.Mutex
	shortWindow []time.Time
	longWindow  []time.Time
}

func newRateLimiter(perSecond, per2Min int, log zerolog.Logger) *rateLimiter {
	if perSecond <= 0 {
		perSecond = DefaultRequestsPerSecond
	}
	if per2Min <= 0 {
		per2Min = DefaultRequestsPer2Min
	}
	return &rateLimiter{
		perSecond: perSecond,
		per2Min:   per2Min,
		log:       log,
	}
}

// wait blocks until another request fits both windows or ctx is done
func (l *rateLimiter) wait(ctx context.Context) error {
	for {
		l.mu.Lock()

		now := time.Now()
		l.shortWindow = prune(l.shortWindow, now.Add(-time.Second))
		l.longWindow = prune(l.longWindow, now.Add(-2*time.Minute))

		short, long := len(l.shortWindow), len(l.longWindow)
		var waitTime time.Duration
		switch {
		case short >= l.perSecond:
			waitTime = l.shortWindow[0].Add(time.Second).Sub(now) + 100*time.Millisecond
		case long >= l.per2Min:
			waitTime = l.longWindow[0].Add(2*time.Minute).Sub(now) + 100*time.Millisecond
		default:
			l.shortWindow = append(l.shortWindow, now)
			l.longWindow = append(l.longWindow, now)
			l.mu.Unlock()
			return nil
		}
		l.mu.Unlock()

		l.log.Debug().
			Int("short", short).
			Int("long", long).
			Dur("wait", waitTime).
			Msg("rate limit reached, waiting")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}
}

// prune drops timestamps at or before cutoff
func prune(window []time.Time, cutoff time.Time) []time.Time {
	kept := window[:0]
	for _, t := range window {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
