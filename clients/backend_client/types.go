package backend_client

import (
	"time"

	"github.com/mcdev12/echoshift/internal/models"
)

// The backend reports instants as integer nanoseconds since the Unix
// epoch. Wire types keep them raw; conversion to time.Time happens once
// at the client boundary.

type chatMessageWire struct {
	Sender    string `json:"sender"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type roomStateWire struct {
	Phase                   models.Phase      `json:"phase"`
	Players                 []models.Player   `json:"players"`
	HostID                  string            `json:"host_id"`
	RoomCode                string            `json:"room_code"`
	RoundNumber             int               `json:"round_number"`
	ChatMessages            []chatMessageWire `json:"chat_messages"`
	ChatCountdownStartTime  *int64            `json:"chat_countdown_start_time,omitempty"`
	GeneratedTopics         []models.Topic    `json:"generated_topics"`
	Votes                   []models.Vote     `json:"votes"`
	TopicSelectionStartTime *int64            `json:"topic_selection_start_time,omitempty"`
	SelectedTopic           *models.Topic     `json:"selected_topic,omitempty"`
	Guesses                 []models.Guess    `json:"guesses"`
}

type createRoomRequest struct {
	HostID   string `json:"host_id"`
	HostName string `json:"host_name"`
	RoomCode string `json:"room_code"`
}

type joinRoomRequest struct {
	PlayerID   string `json:"player_id"`
	PlayerName string `json:"player_name"`
}

type startGameRequest struct {
	HostID string `json:"host_id"`
}

type voteRequest struct {
	PlayerID   string `json:"player_id"`
	TopicIndex int    `json:"topic_index"`
}

type sendMessageRequest struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

type submitGuessesRequest struct {
	Guesses []models.Guess `json:"guesses"`
}

type roomPhaseResponse struct {
	Phase models.Phase `json:"phase"`
}

func nanosToTime(ns *int64) *time.Time {
	if ns == nil {
		return nil
	}
	t := time.Unix(0, *ns)
	return &t
}

func (w *roomStateWire) toModel() *models.RoomState {
	state := &models.RoomState{
		Phase:                   w.Phase,
		Players:                 w.Players,
		HostID:                  w.HostID,
		RoomCode:                w.RoomCode,
		RoundNumber:             w.RoundNumber,
		GeneratedTopics:         w.GeneratedTopics,
		Votes:                   w.Votes,
		SelectedTopic:           w.SelectedTopic,
		Guesses:                 w.Guesses,
		ChatCountdownStartTime:  nanosToTime(w.ChatCountdownStartTime),
		TopicSelectionStartTime: nanosToTime(w.TopicSelectionStartTime),
	}
	for _, m := range w.ChatMessages {
		state.ChatMessages = append(state.ChatMessages, models.ChatMessage{
			Sender:    m.Sender,
			Message:   m.Message,
			Timestamp: time.Unix(0, m.Timestamp),
		})
	}
	return state
}
