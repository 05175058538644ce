package room

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/echoshift/internal/models"
)

const (
	// DefaultPollInterval is how often the backend is polled for room state.
	DefaultPollInterval = 2 * time.Second

	// DefaultStaleness is how long a cached snapshot may be served without
	// a new round-trip. Latency only; consumers tolerate stale snapshots.
	DefaultStaleness = 1 * time.Second

	fetchTimeout = 10 * time.Second
)

// StateFetcher defines what the store needs from the backend client.
type StateFetcher interface {
	GetRoomState(ctx context.Context, roomCode string) (*models.RoomState, error)
}

// CodeSource supplies the room code the store should track. An empty
// code disables polling.
type CodeSource interface {
	RoomCode() string
}

// Store mirrors the server-authoritative room state through polling.
// The poll loop is the single writer; the snapshot is replaced whole on
// every successful fetch, never partially mutated. A fetch failure keeps
// the last good snapshot and is logged, not surfaced.
type Store struct {
	fetcher   StateFetcher
	source    CodeSource
	clock     clockwork.Clock
	interval  time.Duration
	staleness time.Duration

	mu        sync.RWMutex
	latest    *models.RoomState
	fetchedAt time.Time

	wakeCh  chan struct{}
	updates chan *models.RoomState
}

func NewStore(fetcher StateFetcher, source CodeSource, clock clockwork.Clock) *Store {
	return &Store{
		fetcher:   fetcher,
		source:    source,
		clock:     clock,
		interval:  DefaultPollInterval,
		staleness: DefaultStaleness,
		wakeCh:    make(chan struct{}, 1),
		updates:   make(chan *models.RoomState, 1),
	}
}

// SetIntervals overrides the poll interval and staleness window.
func (s *Store) SetIntervals(poll, staleness time.Duration) {
	s.interval = poll
	s.staleness = staleness
}

// Run polls until ctx is cancelled. No polling happens while the room
// code is unset; clearing the code drops the tracked snapshot.
func (s *Store) Run(ctx context.Context) {
	log.Info().Dur("interval", s.interval).Msg("room store poller started")

	ticker := s.clock.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		s.pollOnce(ctx)

		select {
		case <-ctx.Done():
			log.Info().Msg("room store poller stopped")
			return
		case <-ticker.Chan():
		case <-s.wakeCh:
		}
	}
}

func (s *Store) pollOnce(ctx context.Context) {
	code := s.source.RoomCode()
	if code == "" {
		s.drop()
		return
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	state, err := s.fetcher.GetRoomState(fetchCtx, code)
	if err != nil {
		// Transient failure: keep the last good snapshot and let the
		// next interval self-heal.
		log.Warn().Err(err).Str("room_code", code).Msg("room state fetch failed; keeping last snapshot")
		return
	}

	s.mu.Lock()
	s.latest = state
	s.fetchedAt = s.clock.Now()
	s.mu.Unlock()

	s.publish(state)
}

// publish delivers the snapshot to the coalescing updates channel,
// replacing any undelivered older snapshot.
func (s *Store) publish(state *models.RoomState) {
	for {
		select {
		case s.updates <- state:
			return
		default:
			select {
			case <-s.updates:
			default:
			}
		}
	}
}

func (s *Store) drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = nil
	s.fetchedAt = time.Time{}
}

// Updates returns a channel carrying the most recent snapshot after each
// successful poll. Older undelivered snapshots are dropped.
func (s *Store) Updates() <-chan *models.RoomState {
	return s.updates
}

// Latest returns the last good snapshot and when it was fetched, without
// a round-trip. Returns nil when no snapshot is available.
func (s *Store) Latest() (*models.RoomState, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.fetchedAt
}

// LatestPhase returns the phase of the last good snapshot.
func (s *Store) LatestPhase() (models.Phase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return "", false
	}
	return s.latest.Phase, true
}

// State returns the cached snapshot when it is within the staleness
// window, otherwise fetches a fresh one. The staleness window affects
// latency only, never correctness.
func (s *Store) State(ctx context.Context) (*models.RoomState, error) {
	s.mu.RLock()
	latest, fetchedAt := s.latest, s.fetchedAt
	s.mu.RUnlock()

	if latest != nil && s.clock.Now().Sub(fetchedAt) <= s.staleness {
		return latest, nil
	}

	code := s.source.RoomCode()
	if code == "" {
		return nil, ErrNoRoom
	}

	state, err := s.fetcher.GetRoomState(ctx, code)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.latest = state
	s.fetchedAt = s.clock.Now()
	s.mu.Unlock()

	s.publish(state)
	return state, nil
}

// Invalidate marks the cached snapshot stale and wakes the poll loop so
// the next read reflects a just-performed action.
func (s *Store) Invalidate() {
	s.mu.Lock()
	s.fetchedAt = time.Time{}
	s.mu.Unlock()

	select {
	case s.wakeCh <- struct{}{}:
	default:
	}
}
