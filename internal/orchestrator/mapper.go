package orchestrator

import (
	"github.com/mcdev12/echoshift/internal/models"
)

// MapPhaseToScreen maps the remote phase to the screen that should be
// displayed. The mapping is total and one-directional: screen follows
// phase, never the other way, so the server stays the single source of
// truth and local navigation alone cannot desynchronize the client.
// An unrecognized phase keeps the current screen.
func MapPhaseToScreen(phase models.Phase, current models.Screen) models.Screen {
	switch phase {
	case models.PhaseWaiting:
		return models.ScreenLobby
	case models.PhaseTopicSelection:
		return models.ScreenTopicSelection
	case models.PhaseChatting:
		return models.ScreenChat
	case models.PhaseGuessing:
		return models.ScreenGuessing
	case models.PhaseResults:
		return models.ScreenResults
	default:
		return current
	}
}
