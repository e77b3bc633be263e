package application

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/YukiGDMG/TCP-IP/internal/config"
	"github.com/YukiGDMG/TCP-IP/internal/game"
	"github.com/YukiGDMG/TCP-IP/internal/repository"
	"github.com/YukiGDMG/TCP-IP/internal/repository/storage"
	"github.com/YukiGDMG/TCP-IP/transport/rest"
	"github.com/YukiGDMG/TCP-IP/transport/tcp"
	"github.com/YukiGDMG/TCP-IP/transport/websocket"
)

// RunApp - runs the application.
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

	// round history defaults to in-process memory; redis is the opt-in
	// durable variant
	history := repository.NewMemoryHistory()
	if conf.Redis.Enabled {
		redisStorage, err := storage.New(ctx, conf.Redis.GetAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}

		defer func() {
			if err = redisStorage.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		history = repository.NewRedisHistory(redisStorage.Connection)
	}

	manager := game.NewManager(logger, history, conf.RoundTimeout())

	matchmaker := game.NewMatchmaker(logger, manager)
	go matchmaker.Run(ctx)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, manager).Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run WebSocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.WSPort)
		if wsErr := websocket.New(logger, manager).Start(conf.WSPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	// run TCP game server
	tcpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting TCP server", "port", conf.TCPPort)
		if tcpErr := tcp.New(logger, manager).Start(ctx, conf.TCPPort); tcpErr != nil {
			log.Error("TCP server error", "error", tcpErr)
			tcpErrCh <- tcpErr
		}
	}()

	select {
	case err := <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err := <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case err := <-tcpErrCh:
		return fmt.Errorf("TCP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
