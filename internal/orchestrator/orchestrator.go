// Package orchestrator keeps a polled client in lockstep with the
// server-driven game loop: it maps remote phase to local screen, watches
// server-anchored countdowns, and arms the phase advancement trigger
// when a countdown expires or a vote quota is met.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/echoshift/internal/countdown"
	"github.com/mcdev12/echoshift/internal/models"
	"github.com/mcdev12/echoshift/internal/session"
)

// Orchestrator reacts to every room snapshot the store delivers. It is
// the single writer of the session screen field; countdown watchers and
// the advancement trigger live in a per-phase scope whose context is
// cancelled deterministically when the governing condition no longer
// holds, so navigation away from a phase never leaks timers.
type Orchestrator struct {
	session *session.Store
	store   RoomSource
	backend PhaseBackend
	clock   clockwork.Clock

	topicCountdown *countdown.Countdown
	chatCountdown  *countdown.Countdown
	advancer       *Advancer

	scopeKey    string
	scopeCancel context.CancelFunc
	scopeDone   chan struct{}
}

func New(sess *session.Store, store RoomSource, backend PhaseBackend, clock clockwork.Clock) *Orchestrator {
	return &Orchestrator{
		session:        sess,
		store:          store,
		backend:        backend,
		clock:          clock,
		topicCountdown: countdown.New(clock, countdown.TopicSelectionDuration),
		chatCountdown:  countdown.New(clock, countdown.ChatDuration),
		advancer:       NewAdvancer(backend, store, sess, clock),
	}
}

// Run consumes store updates until ctx is cancelled.
func (o *Orchestrator) Run(ctx context.Context) {
	log.Info().Msg("orchestrator started")
	defer o.cancelScope()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("orchestrator stopped")
			return
		case state := <-o.store.Updates():
			o.apply(ctx, state)
		}
	}
}

// apply handles one fresh snapshot: screen mapping first, then the
// per-phase scope. With no room affiliation or identity the mapper is
// bypassed entirely and any previous scope is torn down.
func (o *Orchestrator) apply(ctx context.Context, state *models.RoomState) {
	snap := o.session.Snapshot()
	if snap.RoomCode == "" || snap.PlayerID == "" {
		o.cancelScope()
		return
	}

	if next := MapPhaseToScreen(state.Phase, snap.Screen); next != snap.Screen {
		log.Info().
			Str("phase", string(state.Phase)).
			Str("from", string(snap.Screen)).
			Str("to", string(next)).
			Msg("screen follows remote phase")
		o.session.SetScreen(next)
		o.logScreenContext(next, snap.PlayerID, state)
	}

	o.ensureScope(ctx, state)
}

// logScreenContext adds one-time detail when a screen is entered.
func (o *Orchestrator) logScreenContext(screen models.Screen, playerID string, state *models.RoomState) {
	switch screen {
	case models.ScreenChat:
		if state.SelectedTopic != nil {
			log.Info().
				Str("room_code", state.RoomCode).
				Str("topic", state.SelectedTopic.Question).
				Msg("topic selected")
		}
		for i, topic := range state.GeneratedTopics {
			log.Debug().
				Str("topic", topic.Question).
				Int("votes", state.VoteCount(i)).
				Msg("vote tally")
		}
	case models.ScreenGuessing:
		if self, ok := state.FindPlayerByID(playerID); ok && self.Anchor() {
			log.Info().
				Str("room_code", state.RoomCode).
				Msg("this player is the anchor and must now identify the cardholders")
		}
	}
}

// ensureScope replaces the active phase scope when the governing phase
// or its server start instant changes, or when the previous watcher has
// already wound down on its own (after the room was left, for example)
// and left the key stale. Re-applying an unchanged snapshot over a live
// watcher is a no-op.
func (o *Orchestrator) ensureScope(ctx context.Context, state *models.RoomState) {
	key := scopeKeyFor(state)
	if key == o.scopeKey && !o.scopeExited() {
		return
	}

	o.cancelScope()
	o.scopeKey = key

	scopeCtx, cancel := context.WithCancel(ctx)
	o.scopeCancel = cancel

	switch state.Phase {
	case models.PhaseTopicSelection:
		if start := state.TopicSelectionStartTime; start != nil {
			go o.logCountdown(scopeCtx, state.RoomCode, state.Phase, o.topicCountdown, *start)
		}
		o.spawnWatch(scopeCtx, state.RoomCode, models.PhaseTopicSelection, o.topicCountdown,
			func(s *models.RoomState) *time.Time { return s.TopicSelectionStartTime },
			func(s *models.RoomState) bool { return s.AllVoted() },
		)
	case models.PhaseChatting:
		if start := state.ChatCountdownStartTime; start != nil {
			go o.logCountdown(scopeCtx, state.RoomCode, state.Phase, o.chatCountdown, *start)
		}
		o.spawnWatch(scopeCtx, state.RoomCode, models.PhaseChatting, o.chatCountdown,
			func(s *models.RoomState) *time.Time { return s.ChatCountdownStartTime },
			nil,
		)
	}
}

// spawnWatch starts the phase watcher and records its done channel so a
// watcher that returns on its own invalidates the scope key.
func (o *Orchestrator) spawnWatch(
	ctx context.Context,
	roomCode string,
	governing models.Phase,
	cd *countdown.Countdown,
	startOf func(*models.RoomState) *time.Time,
	quota func(*models.RoomState) bool,
) {
	done := make(chan struct{})
	o.scopeDone = done
	go func() {
		defer close(done)
		o.watchPhase(ctx, roomCode, governing, cd, startOf, quota)
	}()
}

// scopeExited reports whether the active scope's watcher has returned.
func (o *Orchestrator) scopeExited() bool {
	if o.scopeDone == nil {
		return false
	}
	select {
	case <-o.scopeDone:
		return true
	default:
		return false
	}
}

func (o *Orchestrator) cancelScope() {
	if o.scopeCancel != nil {
		o.scopeCancel()
		o.scopeCancel = nil
	}
	o.scopeKey = ""
	o.scopeDone = nil
}

// logCountdown traces the remaining time of a running countdown, one
// line per displayed second, and winds down once it expires.
func (o *Orchestrator) logCountdown(ctx context.Context, roomCode string, phase models.Phase, cd *countdown.Countdown, start time.Time) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	last := -1
	cd.Watch(ctx, start, func(s countdown.Sample) {
		if s.RemainingSeconds != last {
			last = s.RemainingSeconds
			log.Debug().
				Str("room_code", roomCode).
				Str("phase", string(phase)).
				Str("remaining", countdown.FormatRemaining(s.RemainingSeconds, true)).
				Msg("countdown")
		}
		if s.Expired {
			cancel()
		}
	})
}

// scopeKeyFor identifies a phase scope by phase plus the server start
// instant that governs it, so a new round re-arms the watcher even when
// the phase name repeats.
func scopeKeyFor(state *models.RoomState) string {
	start := "unset"
	switch state.Phase {
	case models.PhaseTopicSelection:
		if state.TopicSelectionStartTime != nil {
			start = fmt.Sprint(state.TopicSelectionStartTime.UnixNano())
		}
	case models.PhaseChatting:
		if state.ChatCountdownStartTime != nil {
			start = fmt.Sprint(state.ChatCountdownStartTime.UnixNano())
		}
	}
	return string(state.Phase) + "|" + start
}

// watchPhase samples the governing countdown every SampleInterval,
// re-reading the latest polled snapshot each time. The trigger is armed
// at most once per scope, on the first sample where the countdown is
// expired (or the quota is met) while the room is still observed in the
// governing phase. A countdown with no start instant is not running;
// only the quota can arm then.
func (o *Orchestrator) watchPhase(
	ctx context.Context,
	roomCode string,
	governing models.Phase,
	cd *countdown.Countdown,
	startOf func(*models.RoomState) *time.Time,
	quota func(*models.RoomState) bool,
) {
	ticker := o.clock.NewTicker(countdown.SampleInterval)
	defer ticker.Stop()

	armed := false
	arm := func(reason string) {
		if armed {
			return
		}
		armed = true
		log.Info().
			Str("room_code", roomCode).
			Str("phase", string(governing)).
			Str("reason", reason).
			Msg("arming phase advancement trigger")
		go o.advancer.Run(ctx, roomCode, governing)
	}

	for {
		if o.session.RoomCode() != roomCode {
			return
		}

		latest, _ := o.store.Latest()
		if latest == nil || latest.Phase != governing {
			return
		}

		if cd.Expired(startOf(latest)) {
			arm("countdown expired")
		} else if quota != nil && quota(latest) {
			arm("quota met")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
		}
	}
}
