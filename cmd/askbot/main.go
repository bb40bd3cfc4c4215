package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"askbot/internal/bot"
	"askbot/internal/config"
)

const logPrefix = "[askbot]"

func main() {
	config.LoadDotEnv(logPrefix)

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("%s %v", logPrefix, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Printf("%s starting (model=%s)", logPrefix, cfg.Model)
	if err := bot.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("%s %v", logPrefix, err)
	}
	log.Printf("%s shutdown complete", logPrefix)
}
