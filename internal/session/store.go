package session

import (
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/echoshift/internal/models"
)

// Snapshot is a read-only copy of the session at one point in time.
type Snapshot struct {
	PlayerID  string
	Username  string
	RoomCode  string
	IsHost    bool
	Screen    models.Screen
	LastError string
}

// Store holds the process-wide client session. PlayerID and Username
// survive restarts via the identity file; RoomCode, IsHost, Screen and
// LastError are ephemeral and reset to defaults on startup or Reset.
//
// The store is passed as an explicit dependency to the poller, mapper
// and action layer rather than living as an ambient singleton.
type Store struct {
	mu sync.Mutex

	playerID  string
	username  string
	roomCode  string
	isHost    bool
	screen    models.Screen
	lastError string

	persister *IdentityPersister
}

// NewStore creates a session store. If persister is non-nil, previously
// saved identity fields are loaded and future identity changes are saved.
func NewStore(persister *IdentityPersister) *Store {
	s := &Store{
		screen:    models.ScreenHome,
		persister: persister,
	}

	if persister != nil {
		identity, err := persister.Load()
		if err != nil {
			log.Warn().Err(err).Msg("could not load persisted identity; starting fresh")
		} else if identity != nil {
			s.playerID = identity.PlayerID
			s.username = identity.Username
		}
	}

	return s
}

// EnsureIdentity generates and persists any missing identity fields.
// A hand-edited or corrupt identity file can carry a malformed display
// name; those are regenerated rather than propagated.
func (s *Store) EnsureIdentity() {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	if s.playerID == "" {
		s.playerID = GeneratePlayerID()
		changed = true
	}
	if !ValidateUsername(s.username) {
		s.username = GenerateUsername()
		changed = true
	}
	if changed {
		s.persistIdentityLocked()
	}
}

// ResetUsername discards the current display name and generates a new one.
func (s *Store) ResetUsername() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.username = GenerateUsername()
	s.persistIdentityLocked()
	return s.username
}

func (s *Store) persistIdentityLocked() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Save(&Identity{PlayerID: s.playerID, Username: s.username}); err != nil {
		log.Warn().Err(err).Msg("failed to persist identity")
	}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		PlayerID:  s.playerID,
		Username:  s.username,
		RoomCode:  s.roomCode,
		IsHost:    s.isHost,
		Screen:    s.screen,
		LastError: s.lastError,
	}
}

func (s *Store) PlayerID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerID
}

func (s *Store) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *Store) RoomCode() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roomCode
}

func (s *Store) IsHost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isHost
}

func (s *Store) Screen() models.Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Store) SetRoom(roomCode string, isHost bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomCode = roomCode
	s.isHost = isHost
}

func (s *Store) SetScreen(screen models.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen = screen
}

// SetError records a user-facing failure cause. Surfaced once; cleared
// by the next successful action or ClearError.
func (s *Store) SetError(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = message
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = ""
}

func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastError
}

// Reset clears room affiliation and returns to the home screen.
// Identity fields are kept.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomCode = ""
	s.isHost = false
	s.screen = models.ScreenHome
	s.lastError = ""
}
