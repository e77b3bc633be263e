package game

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
	"github.com/YukiGDMG/TCP-IP/internal/rps"
)

// Room owns exactly two sessions for the duration of one round. It is
// one-shot: the active flag transitions true -> false exactly once, and that
// check-and-set under the room lock is the linearization point for every
// concurrent ending (completion, quit, timeout, disconnect).
type Room struct {
	ID     string
	logger *slog.Logger

	// playerA/playerB is the fixed designation used for rule evaluation.
	playerA *Session
	playerB *Session

	onDone func(record *entity.RoundRecord)

	mu      sync.Mutex
	moves   map[string]string
	outcome rps.Outcome
	active  bool
	timer   *time.Timer
}

func NewRoom(logger *slog.Logger, playerA, playerB *Session, onDone func(*entity.RoundRecord)) *Room {
	id := uuid.NewString()

	return &Room{
		ID:      id,
		logger:  logger.With("component", "room", "room_id", id),
		playerA: playerA,
		playerB: playerB,
		onDone:  onDone,
		moves:   make(map[string]string, 2),
		active:  true,
	}
}

// Start transitions both sessions queued -> in_game, attaches the room to
// them, and announces the pairing, each side seeing the other's nickname.
// A positive deadline arms the authoritative server-side round timer; the
// client-asserted timeout record is honored either way.
func (that *Room) Start(deadline time.Duration) {
	that.playerA.enterGame(that)
	that.playerB.enterGame(that)

	that.playerA.notify(matchFound(that.playerB.Nickname))
	that.playerB.notify(matchFound(that.playerA.Nickname))

	if deadline > 0 {
		that.mu.Lock()
		that.timer = time.AfterFunc(deadline, that.HandleTimeout)
		that.mu.Unlock()
	}

	that.logger.Info("round started", "player_a", that.playerA.Nickname, "player_b", that.playerB.Nickname)
}

// HandleMove records a session's move; the second move triggers judging. A
// repeated submission overwrites the first, which cannot corrupt state: the
// map holds at most one entry per session.
func (that *Room) HandleMove(session *Session, move string) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return
	}

	that.moves[session.ID] = move
	that.logger.Info("move received", "nickname", session.Nickname, "move", move)

	if len(that.moves) < 2 {
		return
	}

	that.judgeAndRespond()
	that.deactivate(entity.ReasonCompleted)
}

// judgeAndRespond runs under the room lock so a racing quit or timeout cannot
// interleave between judging and the result sends.
func (that *Room) judgeAndRespond() {
	moveA := that.moves[that.playerA.ID]
	moveB := that.moves[that.playerB.ID]

	that.outcome = rps.Judge(moveA, moveB)
	labelA, labelB := resultLabels(that.outcome)

	that.playerA.notify(protocol.NewResult(labelA, moveB))
	that.playerB.notify(protocol.NewResult(labelB, moveA))
}

// HandleQuit ends the round with the non-leaving session declared the winner
// unconditionally. The leaver receives no result.
func (that *Room) HandleQuit(leaver *Session) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return
	}

	winner := that.playerA
	if leaver == that.playerA {
		winner = that.playerB
	}

	winner.notify(protocol.NewNotification(protocol.EventOpponentLeft, "Your opponent left the room. You win!"))

	that.logger.Info("player left mid-round", "nickname", leaver.Nickname)
	that.deactivate(entity.ReasonOpponentDeparted)
}

// HandleTimeout ends the round with no winner, whether triggered by the
// client-asserted signal or by the server-side timer.
func (that *Room) HandleTimeout() {
	that.mu.Lock()
	defer that.mu.Unlock()

	if !that.active {
		return
	}

	expired := protocol.NewNotification(protocol.EventTimeExpired, "Time expired, no result.")
	that.playerA.notify(expired)
	that.playerB.notify(expired)

	that.deactivate(entity.ReasonTimeout)
}

// deactivate is the single one-shot exit from the active state. Callers hold
// the room lock. Both sessions return to the lobby before the closing
// notification goes out; that notification is the client's signal that it may
// request matchmaking again.
func (that *Room) deactivate(reason string) {
	if !that.active {
		return
	}
	that.active = false

	if that.timer != nil {
		that.timer.Stop()
	}

	that.playerA.reset()
	that.playerB.reset()

	lobby := protocol.NewNotification(protocol.EventReturnToLobby, "Round over, returning to lobby.")
	that.playerA.notify(lobby)
	that.playerB.notify(lobby)

	record := &entity.RoundRecord{
		RoomID:  that.ID,
		PlayerA: that.playerA.Nickname,
		PlayerB: that.playerB.Nickname,
		MoveA:   that.moves[that.playerA.ID],
		MoveB:   that.moves[that.playerB.ID],
		Outcome: string(that.outcome),
		Reason:  reason,
		EndedAt: time.Now().UTC(),
	}

	if that.onDone != nil {
		// history write happens off the room lock
		go that.onDone(record)
	}

	that.logger.Info("room closed", "reason", reason)
}

func (that *Room) Active() bool {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.active
}

func matchFound(opponent string) *protocol.Message {
	return protocol.NewNotification(
		protocol.EventMatchFound,
		fmt.Sprintf("Match found! Your opponent is %s. Make your move!", opponent),
	)
}

// resultLabels maps an outcome to the labels each side receives. An invalid
// pair reads as a draw on both sides; the round still ends normally.
func resultLabels(outcome rps.Outcome) (labelA, labelB string) {
	switch outcome {
	case rps.OutcomeAWins:
		return protocol.ResultWin, protocol.ResultLose
	case rps.OutcomeBWins:
		return protocol.ResultLose, protocol.ResultWin
	default:
		return protocol.ResultDraw, protocol.ResultDraw
	}
}
