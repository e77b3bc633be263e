package entity

// Phase is a session's position in the lobby/queue/game cycle.
type Phase string

const (
	PhaseLobby  Phase = "lobby"
	PhaseQueued Phase = "queued"
	PhaseInGame Phase = "in_game"
)

// Player holds the identity of one connected client. The nickname is supplied
// once at handshake and never re-validated.
type Player struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
}
