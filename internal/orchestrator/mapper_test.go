package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcdev12/echoshift/internal/models"
)

func TestMapPhaseToScreenTotalMapping(t *testing.T) {
	cases := []struct {
		phase models.Phase
		want  models.Screen
	}{
		{phase: models.PhaseWaiting, want: models.ScreenLobby},
		{phase: models.PhaseTopicSelection, want: models.ScreenTopicSelection},
		{phase: models.PhaseChatting, want: models.ScreenChat},
		{phase: models.PhaseGuessing, want: models.ScreenGuessing},
		{phase: models.PhaseResults, want: models.ScreenResults},
	}

	for _, tc := range cases {
		t.Run(string(tc.phase), func(t *testing.T) {
			require.Equal(t, tc.want, MapPhaseToScreen(tc.phase, models.ScreenHome))
		})
	}
}

func TestMapPhaseToScreenIdempotent(t *testing.T) {
	phases := []models.Phase{
		models.PhaseWaiting,
		models.PhaseTopicSelection,
		models.PhaseChatting,
		models.PhaseGuessing,
		models.PhaseResults,
	}

	for _, phase := range phases {
		once := MapPhaseToScreen(phase, models.ScreenHome)
		twice := MapPhaseToScreen(phase, once)
		require.Equal(t, once, twice, "applying the mapper twice with phase %s must be a no-op", phase)
	}
}

func TestMapPhaseToScreenUnknownPhaseKeepsCurrent(t *testing.T) {
	require.Equal(t, models.ScreenChat, MapPhaseToScreen(models.Phase("intermission"), models.ScreenChat))
}

func TestMapPhaseToScreenIgnoresLocalNavigation(t *testing.T) {
	// Screen follows phase regardless of where the user navigated.
	require.Equal(t, models.ScreenChat, MapPhaseToScreen(models.PhaseChatting, models.ScreenResults))
	require.Equal(t, models.ScreenLobby, MapPhaseToScreen(models.PhaseWaiting, models.ScreenGuessing))
}
