package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

type Server struct {
	logger *slog.Logger
	stats  gameStats
}

func New(logger *slog.Logger, stats gameStats) *Server {
	return &Server{
		logger: logger.With("component", "rest"),
		stats:  stats,
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.HandleFunc("/stats", that.statsHandler)
	mux.HandleFunc("/rounds", that.roundsHandler)

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
