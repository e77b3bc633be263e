package websocket

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/YukiGDMG/TCP-IP/internal/game"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
)

// Server exposes the same record catalog over WebSocket for browser clients:
// one JSON record per text frame instead of per line. It registers its
// sessions with the same game manager as the TCP listener, so players on
// either transport share one lobby.
type Server struct {
	logger   *slog.Logger
	manager  *game.Manager
	upgrader websocket.Upgrader
}

func New(logger *slog.Logger, manager *game.Manager) *Server {
	return &Server{
		logger:  logger.With("component", "websocket"),
		manager: manager,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  protocol.MaxLineBytes,
			WriteBufferSize: protocol.MaxLineBytes,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
	}
}

func (that *Server) Start(port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.handleUpgrade)

	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     mux,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) handleUpgrade(w http.ResponseWriter, req *http.Request) {
	log := that.logger.With("remote_addr", req.RemoteAddr)

	conn, err := that.upgrader.Upgrade(w, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	that.handleConnection(conn)
}

// handleConnection mirrors the TCP connection loop: handshake frame first,
// then dispatch until the first read error, with panics contained at the
// connection boundary.
func (that *Server) handleConnection(conn *websocket.Conn) {
	log := that.logger.With("remote_addr", conn.RemoteAddr().String())

	defer func() {
		if r := recover(); r != nil {
			log.Error("recovered from connection panic", "panic", r)
		}
		_ = conn.Close()
	}()

	conn.SetReadLimit(protocol.MaxLineBytes)

	handshake, err := readRecord(conn)
	if err != nil {
		log.Info("connection closed before handshake", "error", err)
		return
	}

	session := that.manager.Register(&frameSender{conn: conn}, handshake.Nickname)
	defer that.manager.Disconnect(session)

	for {
		msg, err := readRecord(conn)
		if err != nil {
			log.Info("read loop ended", "nickname", session.Nickname, "error", err)
			return
		}

		that.manager.Dispatch(session, msg)
	}
}

func readRecord(conn *websocket.Conn) (*protocol.Message, error) {
	_, payload, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}

	var msg protocol.Message
	if err = json.Unmarshal(payload, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &msg, nil
}

// frameSender adapts a websocket connection to the game's Sender. Gorilla
// permits a single concurrent writer, so writes are serialized here.
type frameSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (that *frameSender) Send(msg *protocol.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if err = that.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}
