// Package countdown derives remaining time from a server-supplied start
// instant and the local wall clock. No clock-skew correction is applied:
// the backend timestamp is taken at face value, which is an accepted
// source of timing imprecision shared by every client.
package countdown

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// TopicSelectionDuration is the voting window in the topicSelection phase.
	TopicSelectionDuration = 20 * time.Second

	// ChatDuration is the conversation window in the chatting phase.
	ChatDuration = 180 * time.Second

	// SampleInterval is how often a Watcher recomputes remaining time,
	// independent of the room poll cadence so displayed countdowns stay
	// smooth between polls.
	SampleInterval = 100 * time.Millisecond
)

// Countdown computes remaining time for one fixed duration. The two game
// countdowns (topic selection, chat) are instances of this one type.
type Countdown struct {
	clock    clockwork.Clock
	duration time.Duration
}

func New(clock clockwork.Clock, duration time.Duration) *Countdown {
	return &Countdown{clock: clock, duration: duration}
}

// Remaining returns whole seconds left, clamped to zero, rounded up so a
// countdown shows "1" until the final instant. A nil start means the
// timer is not running and ok is false.
func (c *Countdown) Remaining(start *time.Time) (seconds int, ok bool) {
	if start == nil {
		return 0, false
	}
	rem := c.duration - c.clock.Now().Sub(*start)
	if rem < 0 {
		rem = 0
	}
	return int((rem + time.Second - 1) / time.Second), true
}

// Expired reports whether a running countdown has reached zero. A timer
// that is not running is never expired.
func (c *Countdown) Expired(start *time.Time) bool {
	seconds, ok := c.Remaining(start)
	return ok && seconds <= 0
}

// Sample is one reading of a running countdown.
type Sample struct {
	RemainingSeconds int
	Expired          bool
}

// Watch re-samples the countdown every SampleInterval and invokes fn with
// each reading until ctx is cancelled. Expiry is a derived condition on
// every sample, not a one-shot event; the consumer decides what a
// not-expired to expired transition means.
func (c *Countdown) Watch(ctx context.Context, start time.Time, fn func(Sample)) {
	ticker := c.clock.NewTicker(SampleInterval)
	defer ticker.Stop()

	for {
		seconds, _ := c.Remaining(&start)
		fn(Sample{RemainingSeconds: seconds, Expired: seconds <= 0})

		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}

// FormatRemaining renders seconds as "m:ss", or "--:--" when the
// countdown is not running.
func FormatRemaining(seconds int, running bool) string {
	if !running {
		return "--:--"
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
