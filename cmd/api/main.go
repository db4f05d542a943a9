package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Arokeji/Nailted-Back/core/config"
	"github.com/Arokeji/Nailted-Back/core/logger"
	"github.com/Arokeji/Nailted-Back/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg app.Config
	if err := config.Load(&cfg); err != nil {
		logger.New().Error("failed to load config", logger.Error(err))
		return err
	}

	log := app.NewLogger(cfg)
	logger.SetAsDefault(log)

	a, err := app.New(ctx, cfg, app.WithLogger(log))
	if err != nil {
		log.Error("failed to start", logger.Error(err))
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := a.Close(closeCtx); err != nil {
			log.Error("failed to close", logger.Error(err))
		}
	}()

	if err := a.Run(ctx); err != nil {
		log.Error("api stopped with error", logger.Error(err))
		return err
	}
	log.Info("api stopped")
	return nil
}
