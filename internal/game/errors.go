package game

import (
	"errors"
	"strings"
)

var (
	ErrNoActiveRoom     = errors.New("no active room")
	ErrInvalidRoomCode  = errors.New("room code must be at least 4 characters")
	ErrNotHost          = errors.New("only the host can start the game")
	ErrNotEnoughPlayers = errors.New("need at least 3 players to start")
	ErrTooManyPlayers   = errors.New("maximum 6 players allowed")
	ErrVotingClosed     = errors.New("all players have voted")
	ErrEmptyMessage     = errors.New("message is empty")
)

// FriendlyMessage derives a human-readable cause from a backend error's
// text, falling back to the given message. The backend contract only
// guarantees error text, not codes, so matching is by substring.
func FriendlyMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return "Room not found. Please check the code."
	case strings.Contains(msg, "full"):
		return "Room is full (max 6 players)"
	case strings.Contains(msg, "at least 3"):
		return "Need at least 3 players to start"
	case strings.Contains(msg, "Only the host"):
		return "Only the host can start the game"
	default:
		return fallback
	}
}
