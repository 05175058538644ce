package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/mcdev12/echoshift/internal/models"
)

type fakeBackend struct {
	mu           sync.Mutex
	advanceCalls int
	advanceErr   error
	phase        models.Phase
	phaseErr     error
}

func (f *fakeBackend) CheckAndAdvancePhase(ctx context.Context, roomCode string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanceCalls++
	return f.advanceErr
}

func (f *fakeBackend) GetRoomPhase(ctx context.Context, roomCode string) (models.Phase, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phaseErr != nil {
		return "", f.phaseErr
	}
	return f.phase, nil
}

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.advanceCalls
}

func (f *fakeBackend) setAdvanceErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.advanceErr = err
}

func (f *fakeBackend) setPhase(phase models.Phase, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phase = phase
	f.phaseErr = err
}

type fakeRoom struct {
	mu            sync.Mutex
	latest        *models.RoomState
	fetchedAt     time.Time
	updates       chan *models.RoomState
	invalidations int
}

func newFakeRoom() *fakeRoom {
	return &fakeRoom{updates: make(chan *models.RoomState, 8)}
}

func (f *fakeRoom) Updates() <-chan *models.RoomState {
	return f.updates
}

func (f *fakeRoom) Latest() (*models.RoomState, time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.fetchedAt
}

func (f *fakeRoom) LatestPhase() (models.Phase, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.latest == nil {
		return "", false
	}
	return f.latest.Phase, true
}

func (f *fakeRoom) Invalidate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.invalidations++
}

func (f *fakeRoom) invalidated() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.invalidations
}

func (f *fakeRoom) setLatest(state *models.RoomState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.latest = state
}

// push records the snapshot as latest and delivers it as an update, the
// way the real store does after a successful poll.
func (f *fakeRoom) push(state *models.RoomState) {
	f.setLatest(state)
	f.updates <- state
}

type fakeCode struct {
	mu   sync.Mutex
	code string
}

func (f *fakeCode) RoomCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.code
}

func (f *fakeCode) set(code string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.code = code
}
