package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}

	// Setup logging
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	configPath := getEnv("ECHOSHIFT_CONFIG", "config.yaml")
	config, err := loadConfig(configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", configPath).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	services := setupServices(config)

	if os.Getenv("ECHOSHIFT_NEW_USERNAME") == "1" {
		log.Info().Str("username", services.Session.ResetUsername()).Msg("generated a new display name")
	}

	snap := services.Session.Snapshot()
	log.Info().
		Str("backend_url", config.Backend.BaseURL).
		Str("player_id", snap.PlayerID).
		Str("username", snap.Username).
		Msg("starting echoshift client")

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go services.RoomStore.Run(ctx)
	go services.Orchestrator.Run(ctx)

	// Optional headless room entry so the reconciliation loop has a room
	// to track without an interactive surface.
	if roomCode := os.Getenv("ECHOSHIFT_ROOM_CODE"); roomCode != "" {
		if err := services.Game.JoinRoom(ctx, roomCode); err != nil {
			log.Error().Err(err).Str("room_code", roomCode).Str("cause", services.Session.LastError()).Msg("failed to join room")
		}
	} else if os.Getenv("ECHOSHIFT_CREATE_ROOM") == "1" {
		roomCode, err := services.Game.CreateRoom(ctx)
		if err != nil {
			log.Error().Err(err).Str("cause", services.Session.LastError()).Msg("failed to create room")
		} else {
			log.Info().Str("room_code", roomCode).Msg("share this code with other players")
		}
	}

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	cancel()
}
