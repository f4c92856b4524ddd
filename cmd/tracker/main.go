package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/combat-tracker/internal/config"
	"github.com/KirkDiggler/combat-tracker/internal/dice"
	"github.com/KirkDiggler/combat-tracker/internal/handlers/cli"
	"github.com/KirkDiggler/combat-tracker/internal/repositories/creatures"
	"github.com/KirkDiggler/combat-tracker/internal/services/tracker"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var roller dice.Roller
	if cfg.Dice.Seed != 0 {
		roller = dice.NewSeededRoller(cfg.Dice.Seed)
	} else {
		roller = dice.NewRandomRoller()
	}

	trackerService := tracker.NewService(&tracker.ServiceConfig{
		Repository: creatures.NewInMemoryRepository(),
	})

	handler := cli.NewHandler(&cli.HandlerConfig{
		Service: trackerService,
		Roller:  roller,
		Input:   os.Stdin,
		Output:  os.Stdout,
		NoColor: cfg.Tracker.NoColor,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return handler.Run(ctx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Tracker exited with error: %v", err)
	}
}
