package backend_client

import (
	"context"
	"fmt"

	"github.com/mcdev12/echoshift/clients"
	"github.com/mcdev12/echoshift/internal/models"
)

// BackendClient talks to the game backend. Every method is a single
// request/response call; the backend is the sole authority on room state
// and phase transitions.
type BackendClient struct {
	*clients.BaseClient
}

func NewBackendClient(baseURL string) *BackendClient {
	client := &BackendClient{
		BaseClient: clients.NewBaseClient(baseURL),
	}

	client.SetHeader("Content-Type", "application/json")

	return client
}

func (c *BackendClient) CreateRoom(ctx context.Context, hostID, hostName, roomCode string) error {
	req := createRoomRequest{HostID: hostID, HostName: hostName, RoomCode: roomCode}
	return c.PostJSON(ctx, CreateRoomEndpoint, req, nil)
}

func (c *BackendClient) JoinRoom(ctx context.Context, roomCode, playerID, playerName string) error {
	req := joinRoomRequest{PlayerID: playerID, PlayerName: playerName}
	return c.PostJSON(ctx, fmt.Sprintf(JoinRoomEndpoint, roomCode), req, nil)
}

func (c *BackendClient) GetRoomState(ctx context.Context, roomCode string) (*models.RoomState, error) {
	var wire roomStateWire
	if err := c.GetJSON(ctx, fmt.Sprintf(RoomStateEndpoint, roomCode), &wire); err != nil {
		return nil, fmt.Errorf("failed to get room state: %w", err)
	}
	return wire.toModel(), nil
}

func (c *BackendClient) GetRoomPhase(ctx context.Context, roomCode string) (models.Phase, error) {
	var resp roomPhaseResponse
	if err := c.GetJSON(ctx, fmt.Sprintf(RoomPhaseEndpoint, roomCode), &resp); err != nil {
		return "", fmt.Errorf("failed to get room phase: %w", err)
	}
	return resp.Phase, nil
}

func (c *BackendClient) StartGame(ctx context.Context, roomCode, hostID string) error {
	req := startGameRequest{HostID: hostID}
	return c.PostJSON(ctx, fmt.Sprintf(StartGameEndpoint, roomCode), req, nil)
}

func (c *BackendClient) VoteForTopic(ctx context.Context, roomCode, playerID string, topicIndex int) error {
	req := voteRequest{PlayerID: playerID, TopicIndex: topicIndex}
	return c.PostJSON(ctx, fmt.Sprintf(VoteForTopicEndpoint, roomCode), req, nil)
}

func (c *BackendClient) SendMessage(ctx context.Context, roomCode, sender, message string) error {
	req := sendMessageRequest{Sender: sender, Message: message}
	return c.PostJSON(ctx, fmt.Sprintf(SendMessageEndpoint, roomCode), req, nil)
}

// CheckAndAdvancePhase asks the backend to evaluate the current phase's
// exit condition and transition if it is met. Idempotent no-op when not due.
func (c *BackendClient) CheckAndAdvancePhase(ctx context.Context, roomCode string) error {
	return c.PostJSON(ctx, fmt.Sprintf(AdvancePhaseEndpoint, roomCode), nil, nil)
}

func (c *BackendClient) SubmitGuesses(ctx context.Context, roomCode string, guesses []models.Guess) (*models.GuessingResult, error) {
	req := submitGuessesRequest{Guesses: guesses}
	var result models.GuessingResult
	if err := c.PostJSON(ctx, fmt.Sprintf(SubmitGuessesEndpoint, roomCode), req, &result); err != nil {
		return nil, fmt.Errorf("failed to submit guesses: %w", err)
	}
	return &result, nil
}

func (c *BackendClient) PlayAgain(ctx context.Context, roomCode string) error {
	return c.PostJSON(ctx, fmt.Sprintf(PlayAgainEndpoint, roomCode), nil, nil)
}
