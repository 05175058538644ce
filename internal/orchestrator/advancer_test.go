package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/echoshift/internal/models"
)

const testRoomCode = "AB3456"

var errProbeDown = errors.New("phase endpoint unavailable")

func chattingState() *models.RoomState {
	return &models.RoomState{Phase: models.PhaseChatting, RoomCode: testRoomCode}
}

func TestAdvancerFiresImmediatelyThenOnCadence(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &fakeBackend{phase: models.PhaseChatting, phaseErr: errProbeDown}
	store := newFakeRoom()
	store.setLatest(chattingState())
	code := &fakeCode{code: testRoomCode}

	adv := NewAdvancer(backend, store, code, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		adv.Run(ctx, testRoomCode, models.PhaseChatting)
		close(done)
	}()

	// Immediate fire on arming, before any tick.
	require.Eventually(t, func() bool { return backend.calls() == 1 }, 2*time.Second, 10*time.Millisecond)

	// Safety-net refire every retry interval while the phase is unchanged.
	clock.Advance(RetryInterval)
	require.Eventually(t, func() bool { return backend.calls() == 2 }, 2*time.Second, 10*time.Millisecond)

	// A poll observing a different phase terminates the loop without
	// another call.
	store.setLatest(&models.RoomState{Phase: models.PhaseGuessing, RoomCode: testRoomCode})
	clock.Advance(RetryInterval)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("advancer did not disarm after phase change")
	}
	require.Equal(t, 2, backend.calls())
}

func TestAdvancerStopsWithoutFiringWhenPhaseAlreadyMoved(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &fakeBackend{}
	store := newFakeRoom()
	store.setLatest(&models.RoomState{Phase: models.PhaseGuessing, RoomCode: testRoomCode})
	code := &fakeCode{code: testRoomCode}

	adv := NewAdvancer(backend, store, code, clock)
	adv.Run(context.Background(), testRoomCode, models.PhaseChatting)

	require.Zero(t, backend.calls())
}

func TestAdvancerDisarmsViaPhaseProbe(t *testing.T) {
	clock := clockwork.NewFakeClock()
	// The probe reports the transition before the next full poll does.
	backend := &fakeBackend{phase: models.PhaseGuessing}
	store := newFakeRoom()
	store.setLatest(chattingState())
	code := &fakeCode{code: testRoomCode}

	adv := NewAdvancer(backend, store, code, clock)
	adv.Run(context.Background(), testRoomCode, models.PhaseChatting)

	require.Equal(t, 1, backend.calls())
	require.Equal(t, 1, store.invalidated())
}

func TestAdvancerRetriesSilentlyAfterFailedCall(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &fakeBackend{phaseErr: errProbeDown}
	backend.setAdvanceErr(errors.New("backend unreachable"))
	store := newFakeRoom()
	store.setLatest(chattingState())
	code := &fakeCode{code: testRoomCode}

	adv := NewAdvancer(backend, store, code, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		adv.Run(ctx, testRoomCode, models.PhaseChatting)
		close(done)
	}()

	require.Eventually(t, func() bool { return backend.calls() == 1 }, 2*time.Second, 10*time.Millisecond)
	// Failed calls never invalidate the snapshot.
	require.Zero(t, store.invalidated())

	clock.Advance(RetryInterval)
	require.Eventually(t, func() bool { return backend.calls() == 2 }, 2*time.Second, 10*time.Millisecond)

	// Recovery: the next successful call plus probe disarms the trigger.
	backend.setAdvanceErr(nil)
	backend.setPhase(models.PhaseGuessing, nil)
	clock.Advance(RetryInterval)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("advancer did not disarm after recovery")
	}
	require.Equal(t, 3, backend.calls())
	require.Equal(t, 1, store.invalidated())
}

func TestAdvancerStopsWhenRoomLeft(t *testing.T) {
	clock := clockwork.NewFakeClock()
	backend := &fakeBackend{phase: models.PhaseChatting, phaseErr: errProbeDown}
	store := newFakeRoom()
	store.setLatest(chattingState())
	code := &fakeCode{code: testRoomCode}

	adv := NewAdvancer(backend, store, code, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		adv.Run(ctx, testRoomCode, models.PhaseChatting)
		close(done)
	}()

	require.Eventually(t, func() bool { return backend.calls() == 1 }, 2*time.Second, 10*time.Millisecond)

	code.set("")
	clock.Advance(RetryInterval)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("advancer did not stop after room code cleared")
	}
	require.Equal(t, 1, backend.calls())
}
