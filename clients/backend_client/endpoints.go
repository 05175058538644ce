package backend_client

const (
	// API Endpoints
	CreateRoomEndpoint    = "/rooms"
	JoinRoomEndpoint      = "/rooms/%s/join"
	RoomStateEndpoint     = "/rooms/%s/state"
	RoomPhaseEndpoint     = "/rooms/%s/phase"
	StartGameEndpoint     = "/rooms/%s/start"
	VoteForTopicEndpoint  = "/rooms/%s/votes"
	SendMessageEndpoint   = "/rooms/%s/messages"
	AdvancePhaseEndpoint  = "/rooms/%s/advance"
	SubmitGuessesEndpoint = "/rooms/%s/guesses"
	PlayAgainEndpoint     = "/rooms/%s/play-again"
)
