package game

import (
	"sync"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
)

// Sender delivers one wire record to a client. Implementations must be safe
// for concurrent use: room goroutines write to both peers at once.
type Sender interface {
	Send(msg *protocol.Message) error
}

// Session is one connected player for the lifetime of its connection. Phase
// and room reference change together under the session's own lock; the room
// reference is non-nil exactly while the phase is in_game.
type Session struct {
	ID       string
	Nickname string

	sender Sender

	mu    sync.Mutex
	phase entity.Phase
	room  *Room
}

func NewSession(id, nickname string, sender Sender) *Session {
	return &Session{
		ID:       id,
		Nickname: nickname,
		sender:   sender,
		phase:    entity.PhaseLobby,
	}
}

func (that *Session) Phase() entity.Phase {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.phase
}

// Room returns the room currently owning this session, if any.
func (that *Session) Room() *Room {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.room
}

// tryEnterQueue flips lobby -> queued and reports whether the transition
// applied. Any other starting phase leaves the session untouched.
func (that *Session) tryEnterQueue() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase != entity.PhaseLobby {
		return false
	}

	that.phase = entity.PhaseQueued

	return true
}

// leaveQueue flips queued -> lobby after the session has been removed from
// the waiting queue.
func (that *Session) leaveQueue() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.phase == entity.PhaseQueued {
		that.phase = entity.PhaseLobby
	}
}

// enterGame attaches the owning room and flips the session into the game.
func (that *Session) enterGame(room *Room) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.phase = entity.PhaseInGame
	that.room = room
}

// reset returns the session to the lobby and detaches it from its room.
func (that *Session) reset() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.phase = entity.PhaseLobby
	that.room = nil
}

// notify sends a record best-effort. Delivery failures are swallowed: game
// state transitions must not depend on network reachability.
func (that *Session) notify(msg *protocol.Message) {
	_ = that.sender.Send(msg)
}
