package tcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"

	"github.com/YukiGDMG/TCP-IP/internal/game"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
)

// Server is the core listener: one long-lived connection per client, one
// goroutine per connection, newline-delimited records.
type Server struct {
	logger  *slog.Logger
	manager *game.Manager
}

func New(logger *slog.Logger, manager *game.Manager) *Server {
	return &Server{
		logger:  logger.With("component", "tcp"),
		manager: manager,
	}
}

// Start accepts connections until the context is cancelled.
func (that *Server) Start(ctx context.Context, port string) error {
	var lc net.ListenConfig

	listener, err := lc.Listen(ctx, "tcp", ":"+port)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", port, err)
	}

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	that.logger.Info("TCP server listening", "port", port)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("failed to accept connection: %w", err)
		}

		go that.handleConnection(conn)
	}
}

// handleConnection drives one client's entire lifetime: handshake line first,
// then the command loop until the stream ends. A panic here is contained at
// the connection boundary so one session can never take down the listener or
// its peers.
func (that *Server) handleConnection(conn net.Conn) {
	log := that.logger.With("remote_addr", conn.RemoteAddr().String())

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from connection panic", "panic", r)
		}
		_ = conn.Close()
	}()

	codec := protocol.NewLineCodec(conn)

	handshake, err := codec.Read()
	if err != nil {
		log.Info("connection closed before handshake", "error", err)
		return
	}

	session := that.manager.Register(codec, handshake.Nickname)
	defer that.manager.Disconnect(session)

	for {
		msg, err := codec.Read()
		if err != nil {
			// malformed input and remote close both end the session
			log.Info("read loop ended", "nickname", session.Nickname, "error", err)
			return
		}

		that.manager.Dispatch(session, msg)
	}
}
