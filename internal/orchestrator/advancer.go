package orchestrator

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/echoshift/internal/models"
	"github.com/mcdev12/echoshift/internal/room"
)

const (
	// RetryInterval is the cadence at which an armed trigger re-fires as a
	// safety net against a lost first request or a server-side deadline race.
	RetryInterval = 3 * time.Second

	advanceCallTimeout = 10 * time.Second
)

// PhaseBackend defines what the advancement trigger needs from the
// backend client.
type PhaseBackend interface {
	CheckAndAdvancePhase(ctx context.Context, roomCode string) error
	GetRoomPhase(ctx context.Context, roomCode string) (models.Phase, error)
}

// RoomSource defines what the orchestrator and trigger need from the
// room store.
type RoomSource interface {
	Updates() <-chan *models.RoomState
	Latest() (*models.RoomState, time.Time)
	LatestPhase() (models.Phase, bool)
	Invalidate()
}

// Advancer nudges the server state machine forward once a countdown or
// quota condition is met. The server is the sole authority on whether
// advancement happens, so redundant calls are no-ops by contract and the
// trigger never suppresses them client-side.
type Advancer struct {
	backend  PhaseBackend
	store    RoomSource
	source   room.CodeSource
	clock    clockwork.Clock
	interval time.Duration
}

func NewAdvancer(backend PhaseBackend, store RoomSource, source room.CodeSource, clock clockwork.Clock) *Advancer {
	return &Advancer{
		backend:  backend,
		store:    store,
		source:   source,
		clock:    clock,
		interval: RetryInterval,
	}
}

// Run fires an advancement request immediately, then every RetryInterval,
// until a poll observes a phase other than governing, the room code is
// cleared, or ctx is cancelled. The latest polled phase is re-read on
// every tick rather than closed over at loop start. Individual call
// failures are logged and retried; advancement is background
// housekeeping, never surfaced to the user.
func (a *Advancer) Run(ctx context.Context, roomCode string, governing models.Phase) {
	log.Info().
		Str("room_code", roomCode).
		Str("phase", string(governing)).
		Msg("phase advancement trigger armed")

	ticker := a.clock.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		if a.source.RoomCode() != roomCode {
			log.Info().Str("room_code", roomCode).Msg("room left; advancement trigger disarmed")
			return
		}
		if phase, ok := a.store.LatestPhase(); ok && phase != governing {
			log.Info().
				Str("room_code", roomCode).
				Str("from", string(governing)).
				Str("to", string(phase)).
				Msg("phase advanced; trigger disarmed")
			return
		}

		if a.fire(ctx, roomCode, governing) {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}

// fire issues one advancement request and returns true once the phase is
// observed to have moved past governing.
func (a *Advancer) fire(ctx context.Context, roomCode string, governing models.Phase) bool {
	callCtx, cancel := context.WithTimeout(ctx, advanceCallTimeout)
	defer cancel()

	if err := a.backend.CheckAndAdvancePhase(callCtx, roomCode); err != nil {
		log.Warn().Err(err).Str("room_code", roomCode).Msg("checkAndAdvancePhase failed; will retry")
		return false
	}

	// Force the next read to refetch so the transition lands promptly.
	a.store.Invalidate()

	// Cheap probe so the trigger can disarm ahead of the next full poll.
	phase, err := a.backend.GetRoomPhase(callCtx, roomCode)
	if err != nil {
		log.Debug().Err(err).Str("room_code", roomCode).Msg("phase probe failed; deferring to poller")
		return false
	}
	if phase != governing {
		log.Info().
			Str("room_code", roomCode).
			Str("from", string(governing)).
			Str("to", string(phase)).
			Msg("phase advanced; trigger disarmed")
		return true
	}
	return false
}
