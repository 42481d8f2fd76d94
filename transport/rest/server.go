package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/arenalabs/tictactoe-arena/internal/entity"
	"github.com/arenalabs/tictactoe-arena/internal/registry"
)

// ResultArchiver records finished-game outcomes. A nil archiver disables
// archiving; play is never affected either way.
type ResultArchiver interface {
	Record(ctx context.Context, result *entity.GameResult) error
}

// Start - starts the game HTTP server.
func Start(logger *slog.Logger, port string, games *registry.GameRegistry, results ResultArchiver) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      NewRouter(logger, games, results),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// NewRouter - builds the fixed route table of the game protocol.
// Every path outside the table is a 404.
func NewRouter(logger *slog.Logger, games *registry.GameRegistry, results ResultArchiver) http.Handler {
	h := newHandlers(logger, games, results)

	mux := http.NewServeMux()
	mux.HandleFunc("/start", h.startHandler)
	mux.HandleFunc("/status", h.statusHandler)
	mux.HandleFunc("/play", h.playHandler)
	mux.HandleFunc("/list", h.listHandler)
	mux.HandleFunc("/ping", h.pingHandler)
	mux.HandleFunc("/", h.notFoundHandler)

	return mux
}
