package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/arenalabs/tictactoe-arena/internal/config"
	"github.com/arenalabs/tictactoe-arena/internal/registry"
	"github.com/arenalabs/tictactoe-arena/internal/repository"
	"github.com/arenalabs/tictactoe-arena/internal/repository/storage"
	"github.com/arenalabs/tictactoe-arena/transport/rest"
)

// RunApp - runs the game server.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	games := registry.New()

	// The result archive is optional: without a redis address every game
	// lives and dies in process memory.
	var results rest.ResultArchiver
	if addr := conf.Redis.Addr(); addr != "" {
		redisStorage, err := storage.New(ctx, addr)
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		results = repository.NewResultRepository(redisStorage.Connection)
		log.Info("result archive enabled", "addr", addr)
	}

	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(logger, conf.HTTPPort, games, results); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
