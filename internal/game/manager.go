package game

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
	"github.com/YukiGDMG/TCP-IP/internal/rps"
)

const recordTimeout = 5 * time.Second

type roundHistory interface {
	RecordRound(ctx context.Context, record *entity.RoundRecord) error
	Summary(ctx context.Context) (*entity.RoundSummary, error)
	Recent(ctx context.Context, limit int) ([]*entity.RoundRecord, error)
}

// Manager is the owned server context: the waiting queue, the active-room
// registry, and the round history. Every transport registers its sessions
// here and routes their records through Dispatch, so several independent
// server instances can coexist in one process.
type Manager struct {
	logger  *slog.Logger
	queue   *WaitingQueue
	history roundHistory

	roundTimeout time.Duration

	roomsMu sync.Mutex
	rooms   map[string]*Room
}

func NewManager(logger *slog.Logger, history roundHistory, roundTimeout time.Duration) *Manager {
	return &Manager{
		logger:       logger.With("component", "game"),
		queue:        NewWaitingQueue(),
		history:      history,
		roundTimeout: roundTimeout,
		rooms:        make(map[string]*Room),
	}
}

// Register creates a lobby session for a completed handshake and welcomes it.
// An absent nickname falls back to "Unknown"; nicknames are never validated
// beyond that.
func (that *Manager) Register(sender Sender, nickname string) *Session {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = "Unknown"
	}

	session := NewSession(uuid.NewString(), nickname, sender)
	session.notify(protocol.NewNotification(
		protocol.EventWelcome,
		fmt.Sprintf("Welcome %s! Send a match request to play.", nickname),
	))

	that.logger.Info("player entered lobby", "nickname", nickname, "session_id", session.ID)

	return session
}

// Dispatch routes one inbound record through the session's state machine.
// A record that does not fit the session's current phase is ignored; the
// machine is permissive by omission, not by explicit rejection.
func (that *Manager) Dispatch(session *Session, msg *protocol.Message) {
	switch msg.Type {
	case protocol.TypeRequestMatch:
		that.requestMatch(session)
	case protocol.TypeCancelMatch:
		that.cancelMatch(session)
	case protocol.TypeSubmitMove:
		that.submitMove(session, msg.Message)
	case protocol.TypeLeaveGame:
		that.leaveGame(session)
	case protocol.TypeTimeoutElapsed:
		that.timeoutElapsed(session)
	}
}

// Disconnect releases everything a closing connection may still hold: its
// queue slot, and its room via forfeiture. Both paths are no-ops when the
// session holds nothing.
func (that *Manager) Disconnect(session *Session) {
	if that.queue.Remove(session) {
		session.leaveQueue()
	}

	if room := session.Room(); room != nil {
		room.HandleQuit(session)
	}

	that.logger.Info("player disconnected", "nickname", session.Nickname, "session_id", session.ID)
}

func (that *Manager) requestMatch(session *Session) {
	if !session.tryEnterQueue() {
		return
	}

	if !that.queue.Enqueue(session) {
		// tryEnterQueue already excludes double entry; defensive only
		return
	}

	session.notify(protocol.NewNotification(protocol.EventSearching, "Searching for an opponent..."))
	that.logger.Info("player queued", "nickname", session.Nickname)
}

func (that *Manager) cancelMatch(session *Session) {
	if session.Phase() != entity.PhaseQueued {
		return
	}

	if !that.queue.Remove(session) {
		// lost the race with the matchmaker: a match-found notification
		// is already on its way
		return
	}

	session.leaveQueue()
	session.notify(protocol.NewNotification(protocol.EventMatchCancelled, "Match cancelled, back to lobby."))
	that.logger.Info("player left queue", "nickname", session.Nickname)
}

func (that *Manager) submitMove(session *Session, move string) {
	room := session.Room()
	if room == nil {
		return
	}

	room.HandleMove(session, rps.Normalize(move))
}

func (that *Manager) leaveGame(session *Session) {
	room := session.Room()
	if room == nil {
		return
	}

	room.HandleQuit(session)
}

func (that *Manager) timeoutElapsed(session *Session) {
	room := session.Room()
	if room == nil {
		return
	}

	room.HandleTimeout()
}

// startRoom builds a room for a freshly extracted pair, registers it, and
// starts the round. Called by the matchmaker after the queue lock is released.
func (that *Manager) startRoom(playerA, playerB *Session) *Room {
	room := NewRoom(that.logger, playerA, playerB, that.finishRound)

	that.roomsMu.Lock()
	that.rooms[room.ID] = room
	that.roomsMu.Unlock()

	room.Start(that.roundTimeout)

	return room
}

// finishRound runs once per room, off the room lock, after deactivation.
func (that *Manager) finishRound(record *entity.RoundRecord) {
	that.roomsMu.Lock()
	delete(that.rooms, record.RoomID)
	that.roomsMu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := that.history.RecordRound(ctx, record); err != nil {
		that.logger.Error("failed to record round", "room_id", record.RoomID, "error", err)
	}
}

// QueueLen reports how many sessions are awaiting an opponent.
func (that *Manager) QueueLen() int {
	return that.queue.Len()
}

// ActiveRooms reports how many rounds are currently in play.
func (that *Manager) ActiveRooms() int {
	that.roomsMu.Lock()
	defer that.roomsMu.Unlock()
	return len(that.rooms)
}

// RoundSummary aggregates finished rounds from the history.
func (that *Manager) RoundSummary(ctx context.Context) (*entity.RoundSummary, error) {
	summary, err := that.history.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get round summary: %w", err)
	}

	return summary, nil
}

// RecentRounds returns the newest finished rounds, most recent first.
func (that *Manager) RecentRounds(ctx context.Context, limit int) ([]*entity.RoundRecord, error) {
	records, err := that.history.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent rounds: %w", err)
	}

	return records, nil
}
