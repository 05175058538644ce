package models

import (
	"time"
)

// Phase defines the server-authoritative stage of a game round.
// The client only ever requests advancement; it never sets the phase.
type Phase string

const (
	PhaseWaiting        Phase = "waiting"
	PhaseTopicSelection Phase = "topicSelection"
	PhaseChatting       Phase = "chatting"
	PhaseGuessing       Phase = "guessing"
	PhaseResults        Phase = "results"
)

// Screen defines the local screen derived from the remote phase.
type Screen string

const (
	ScreenHome           Screen = "home"
	ScreenLobby          Screen = "lobby"
	ScreenTopicSelection Screen = "topicSelection"
	ScreenChat           Screen = "chat"
	ScreenGuessing       Screen = "guessing"
	ScreenResults        Screen = "results"
)

// Topic is one generated conversation topic players vote on.
type Topic struct {
	Question string `json:"question"`
}

// Vote records one player's vote for a generated topic.
// Well-formed state has at most one per player, but consumers must not
// assume server-side enforcement and should filter rather than index.
type Vote struct {
	PlayerID   string `json:"player_id"`
	TopicIndex int    `json:"topic_index"`
}

// ChatMessage is one message in the room chat log.
type ChatMessage struct {
	Sender    string    `json:"sender"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Guess is one (guesser, target) pair submitted during the guessing phase.
type Guess struct {
	GuesserID string `json:"guesser_id"`
	TargetID  string `json:"target_id"`
	Guess     string `json:"guess"`
}

// GuessingResult is the server-graded outcome of a batch guess submission.
// The client performs no local scoring before the results phase.
type GuessingResult struct {
	CorrectCount int     `json:"correct_count"`
	Guesses      []Guess `json:"guesses"`
}

// RoomState is the full server-owned snapshot of a room. Every poll
// yields a fresh snapshot, never a delta, and the client never mutates it.
type RoomState struct {
	Phase                   Phase         `json:"phase"`
	Players                 []Player      `json:"players"`
	HostID                  string        `json:"host_id"`
	RoomCode                string        `json:"room_code"`
	RoundNumber             int           `json:"round_number"`
	ChatMessages            []ChatMessage `json:"chat_messages"`
	ChatCountdownStartTime  *time.Time    `json:"chat_countdown_start_time,omitempty"`
	GeneratedTopics         []Topic       `json:"generated_topics"`
	Votes                   []Vote        `json:"votes"`
	TopicSelectionStartTime *time.Time    `json:"topic_selection_start_time,omitempty"`
	SelectedTopic           *Topic        `json:"selected_topic,omitempty"`
	Guesses                 []Guess       `json:"guesses"`
}

// VoteCount returns how many votes target the given topic index.
// Filters defensively instead of assuming one vote per player.
func (r *RoomState) VoteCount(topicIndex int) int {
	count := 0
	for _, v := range r.Votes {
		if v.TopicIndex == topicIndex {
			count++
		}
	}
	return count
}

// VoteFor returns the vote cast by the given player, if any.
func (r *RoomState) VoteFor(playerID string) (Vote, bool) {
	for _, v := range r.Votes {
		if v.PlayerID == playerID {
			return v, true
		}
	}
	return Vote{}, false
}

// AllVoted reports whether every player in the room has a recorded vote.
func (r *RoomState) AllVoted() bool {
	return len(r.Players) > 0 && len(r.Votes) >= len(r.Players)
}

// FindPlayerByID returns the player with the given id, if present.
func (r *RoomState) FindPlayerByID(id string) (Player, bool) {
	for _, p := range r.Players {
		if p.ID == id {
			return p, true
		}
	}
	return Player{}, false
}
