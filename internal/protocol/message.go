package protocol

// Message type discriminators. Every wire record is one JSON object per line
// carrying an integer "type"; payload fields vary by type.
const (
	TypeHandshake      = 1 // client -> server, first record only, carries the nickname
	TypeNotification   = 2 // server -> client, free-text status with an event tag
	TypeSubmitMove     = 3 // client -> server, move in the message field
	TypeResult         = 4 // server -> client, personal outcome + opponent's move
	TypeLeaveGame      = 5 // client -> server, forfeit the current round
	TypeRequestMatch   = 6 // client -> server, enter the waiting queue
	TypeCancelMatch    = 7 // client -> server, leave the waiting queue
	TypeTimeoutElapsed = 8 // client -> server, local countdown expired
)

// Notification events. The event tag is the machine-readable trigger for the
// client UI; the message text is informational only.
const (
	EventWelcome        = "welcome"
	EventSearching      = "searching"
	EventMatchFound     = "match_found"
	EventMatchCancelled = "match_cancelled"
	EventOpponentLeft   = "opponent_left_you_win"
	EventTimeExpired    = "time_expired"
	EventReturnToLobby  = "return_to_lobby"
)

// Result labels carried by TypeResult records.
const (
	ResultWin  = "You Win!"
	ResultLose = "You Lose!"
	ResultDraw = "Draw"
)

// Message is a single wire record. Unused fields are omitted on the wire, so
// one struct covers the whole catalog.
type Message struct {
	Type         int    `json:"type"`
	Nickname     string `json:"nickname,omitempty"`
	Event        string `json:"event,omitempty"`
	Message      string `json:"message,omitempty"`
	Result       string `json:"result,omitempty"`
	OpponentMove string `json:"opponent_move,omitempty"`
}

// NewNotification builds a server status record.
func NewNotification(event, text string) *Message {
	return &Message{
		Type:    TypeNotification,
		Event:   event,
		Message: text,
	}
}

// NewResult builds a personalized round result record.
func NewResult(label, opponentMove string) *Message {
	return &Message{
		Type:         TypeResult,
		Result:       label,
		OpponentMove: opponentMove,
	}
}
