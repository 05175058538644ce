package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVoteCountFiltersRatherThanIndexes(t *testing.T) {
	state := &RoomState{
		Players: []Player{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}},
		Votes: []Vote{
			{PlayerID: "p1", TopicIndex: 0},
			{PlayerID: "p2", TopicIndex: 2},
			// Duplicate entry for p1; malformed but must not panic or
			// be double-counted against other topics.
			{PlayerID: "p1", TopicIndex: 2},
		},
	}

	require.Equal(t, 1, state.VoteCount(0))
	require.Equal(t, 0, state.VoteCount(1))
	require.Equal(t, 2, state.VoteCount(2))
}

func TestVoteForReturnsFirstMatch(t *testing.T) {
	state := &RoomState{
		Votes: []Vote{
			{PlayerID: "p1", TopicIndex: 0},
			{PlayerID: "p1", TopicIndex: 2},
		},
	}

	vote, ok := state.VoteFor("p1")
	require.True(t, ok)
	require.Equal(t, 0, vote.TopicIndex)

	_, ok = state.VoteFor("p9")
	require.False(t, ok)
}

func TestAllVoted(t *testing.T) {
	cases := []struct {
		name    string
		players int
		votes   int
		want    bool
	}{
		{name: "empty room", players: 0, votes: 0, want: false},
		{name: "partial", players: 3, votes: 2, want: false},
		{name: "exact", players: 3, votes: 3, want: true},
		{name: "surplus votes", players: 3, votes: 4, want: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := &RoomState{}
			for i := 0; i < tc.players; i++ {
				state.Players = append(state.Players, Player{})
			}
			for i := 0; i < tc.votes; i++ {
				state.Votes = append(state.Votes, Vote{})
			}
			require.Equal(t, tc.want, state.AllVoted())
		})
	}
}

func TestAnchorPrefersRoleOverFlag(t *testing.T) {
	cases := []struct {
		name   string
		player Player
		want   bool
	}{
		{name: "agree anchor", player: Player{Role: RoleAnchor, IsAnchor: true}, want: true},
		{name: "agree regular", player: Player{Role: "Player", IsAnchor: false}, want: false},
		{name: "role wins when flag stale false", player: Player{Role: RoleAnchor, IsAnchor: false}, want: true},
		{name: "role wins when flag stale true", player: Player{Role: "Player", IsAnchor: true}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, tc.player.Anchor())
		})
	}
}
