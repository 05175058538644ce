package main

import (
	"github.com/jonboulle/clockwork"

	"github.com/mcdev12/echoshift/clients/backend_client"
	"github.com/mcdev12/echoshift/internal/game"
	"github.com/mcdev12/echoshift/internal/orchestrator"
	"github.com/mcdev12/echoshift/internal/room"
	"github.com/mcdev12/echoshift/internal/session"
)

type Services struct {
	Session      *session.Store
	Backend      *backend_client.BackendClient
	RoomStore    *room.Store
	Orchestrator *orchestrator.Orchestrator
	Game         *game.App
}

func setupServices(config *Config) *Services {
	clock := clockwork.NewRealClock()

	persister := session.NewIdentityPersister(config.Client.IdentityFile)
	sess := session.NewStore(persister)
	sess.EnsureIdentity()

	backend := backend_client.NewBackendClient(config.Backend.BaseURL)

	roomStore := room.NewStore(backend, sess, clock)
	roomStore.SetIntervals(config.PollInterval(), config.Staleness())

	return &Services{
		Session:      sess,
		Backend:      backend,
		RoomStore:    roomStore,
		Orchestrator: orchestrator.New(sess, roomStore, backend, clock),
		Game:         game.NewApp(backend, sess, roomStore),
	}
}
