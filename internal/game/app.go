// Package game is the user-action layer: every exported method is one
// request/response call against the backend followed by invalidation of
// the cached room snapshot so the next poll reflects the effect.
package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/echoshift/internal/models"
	"github.com/mcdev12/echoshift/internal/session"
)

// GuessWeird marks a target the Anchor believes holds a personality card.
const GuessWeird = "Weird"

const (
	minPlayers = 3
	maxPlayers = 6

	minRoomCodeLen = 4
)

// Backend defines what the action layer needs from the backend client.
type Backend interface {
	CreateRoom(ctx context.Context, hostID, hostName, roomCode string) error
	JoinRoom(ctx context.Context, roomCode, playerID, playerName string) error
	StartGame(ctx context.Context, roomCode, hostID string) error
	VoteForTopic(ctx context.Context, roomCode, playerID string, topicIndex int) error
	SendMessage(ctx context.Context, roomCode, sender, message string) error
	SubmitGuesses(ctx context.Context, roomCode string, guesses []models.Guess) (*models.GuessingResult, error)
	PlayAgain(ctx context.Context, roomCode string) error
}

// RoomCache defines what the action layer needs from the room store:
// a snapshot for pre-dispatch checks (served from cache while fresh,
// refetched past the staleness window), and invalidation so the next
// read reflects a just-performed action.
type RoomCache interface {
	State(ctx context.Context) (*models.RoomState, error)
	Invalidate()
}

// App handles user-initiated game actions. Failures are recorded once on
// the session as a human-readable cause and never retried automatically;
// no failure destroys the session or the last-known room snapshot.
type App struct {
	backend Backend
	session *session.Store
	store   RoomCache
}

func NewApp(backend Backend, sess *session.Store, store RoomCache) *App {
	return &App{
		backend: backend,
		session: sess,
		store:   store,
	}
}

// CreateRoom generates a room code, creates the room on the backend, and
// enters it as host.
func (a *App) CreateRoom(ctx context.Context) (string, error) {
	a.session.EnsureIdentity()
	snap := a.session.Snapshot()

	roomCode := session.GenerateRoomCode()
	if err := a.backend.CreateRoom(ctx, snap.PlayerID, snap.Username, roomCode); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to create room"))
		return "", fmt.Errorf("failed to create room: %w", err)
	}

	a.session.ClearError()
	a.session.SetRoom(roomCode, true)
	a.session.SetScreen(models.ScreenLobby)
	a.store.Invalidate()

	log.Info().Str("room_code", roomCode).Msg("room created")
	return roomCode, nil
}

// JoinRoom enters an existing room as a regular player. The code is
// normalized (trimmed, uppercased) before dispatch.
func (a *App) JoinRoom(ctx context.Context, roomCode string) error {
	roomCode = strings.ToUpper(strings.TrimSpace(roomCode))
	if len(roomCode) < minRoomCodeLen {
		a.session.SetError("Room code must be at least 4 characters")
		return ErrInvalidRoomCode
	}

	a.session.EnsureIdentity()
	snap := a.session.Snapshot()

	if err := a.backend.JoinRoom(ctx, roomCode, snap.PlayerID, snap.Username); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to join room"))
		return fmt.Errorf("failed to join room: %w", err)
	}

	a.session.ClearError()
	a.session.SetRoom(roomCode, false)
	a.session.SetScreen(models.ScreenLobby)
	a.store.Invalidate()

	log.Info().Str("room_code", roomCode).Msg("joined room")
	return nil
}

// StartGame asks the backend to start the round. The lobby rules (host
// only, 3 to 6 players) are checked before dispatch so the common cases
// fail fast; the server remains the final arbiter.
func (a *App) StartGame(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.RoomCode == "" {
		return ErrNoActiveRoom
	}
	if !snap.IsHost {
		a.session.SetError("Only the host can start the game")
		return ErrNotHost
	}

	// State fetch failures skip the fast-fail checks; the server decides.
	if latest, err := a.store.State(ctx); err == nil {
		if len(latest.Players) < minPlayers {
			a.session.SetError("Need at least 3 players to start")
			return ErrNotEnoughPlayers
		}
		if len(latest.Players) > maxPlayers {
			a.session.SetError("Maximum 6 players allowed")
			return ErrTooManyPlayers
		}
	}

	if err := a.backend.StartGame(ctx, snap.RoomCode, snap.PlayerID); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to start game"))
		return fmt.Errorf("failed to start game: %w", err)
	}

	a.session.ClearError()
	a.store.Invalidate()

	log.Info().Str("room_code", snap.RoomCode).Msg("game started")
	return nil
}

// SendMessage posts a chat message under the session's display name.
func (a *App) SendMessage(ctx context.Context, message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}

	snap := a.session.Snapshot()
	if snap.RoomCode == "" {
		return ErrNoActiveRoom
	}

	if err := a.backend.SendMessage(ctx, snap.RoomCode, snap.Username, message); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to send message"))
		return fmt.Errorf("failed to send message: %w", err)
	}

	a.session.ClearError()
	a.store.Invalidate()
	return nil
}

// VoteForTopic casts or re-casts this player's vote. Re-voting overwrites
// per the server contract; the only client-side block is once every
// player has a recorded vote, and even that is a UI nicety with the
// server as final arbiter.
func (a *App) VoteForTopic(ctx context.Context, topicIndex int) error {
	snap := a.session.Snapshot()
	if snap.RoomCode == "" {
		return ErrNoActiveRoom
	}

	if latest, err := a.store.State(ctx); err == nil {
		if latest.AllVoted() {
			return ErrVotingClosed
		}
		if prev, ok := latest.VoteFor(snap.PlayerID); ok {
			log.Debug().
				Int("previous_topic", prev.TopicIndex).
				Int("topic", topicIndex).
				Msg("replacing earlier vote")
		}
	}

	if err := a.backend.VoteForTopic(ctx, snap.RoomCode, snap.PlayerID, topicIndex); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to vote"))
		return fmt.Errorf("failed to vote for topic: %w", err)
	}

	a.session.ClearError()
	a.store.Invalidate()
	return nil
}

// SubmitGuesses batches all selected target ids into one call. An empty
// selection is permitted and means "no one selected". Duplicates are not
// deduplicated here; grading is entirely server-side.
func (a *App) SubmitGuesses(ctx context.Context, targetIDs []string) (*models.GuessingResult, error) {
	snap := a.session.Snapshot()
	if snap.RoomCode == "" {
		return nil, ErrNoActiveRoom
	}

	guesses := make([]models.Guess, 0, len(targetIDs))
	for _, targetID := range targetIDs {
		guesses = append(guesses, models.Guess{
			GuesserID: snap.PlayerID,
			TargetID:  targetID,
			Guess:     GuessWeird,
		})
	}

	result, err := a.backend.SubmitGuesses(ctx, snap.RoomCode, guesses)
	if err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to submit guess"))
		return nil, fmt.Errorf("failed to submit guesses: %w", err)
	}

	a.session.ClearError()
	a.store.Invalidate()

	log.Info().
		Str("room_code", snap.RoomCode).
		Int("targets", len(targetIDs)).
		Int("correct", result.CorrectCount).
		Msg("guesses submitted")
	return result, nil
}

// PlayAgain requests a fresh round for the same room.
func (a *App) PlayAgain(ctx context.Context) error {
	snap := a.session.Snapshot()
	if snap.RoomCode == "" {
		return ErrNoActiveRoom
	}

	if err := a.backend.PlayAgain(ctx, snap.RoomCode); err != nil {
		a.session.SetError(FriendlyMessage(err, "Failed to restart game"))
		return fmt.Errorf("failed to request new round: %w", err)
	}

	a.session.ClearError()
	a.store.Invalidate()

	log.Info().Str("room_code", snap.RoomCode).Msg("new round requested")
	return nil
}

// LeaveRoom clears room affiliation locally. The store stops polling on
// its next tick once the code is gone.
func (a *App) LeaveRoom() {
	code := a.session.RoomCode()
	a.session.Reset()
	a.store.Invalidate()
	if code != "" {
		log.Info().Str("room_code", code).Msg("left room")
	}
}
