package entity

import "time"

const (
	ReasonCompleted        = "completed"
	ReasonOpponentDeparted = "opponent_departed"
	ReasonTimeout          = "timeout"
)

// RoundRecord is the terminal state of one finished round, as stored by the
// round-history repository.
type RoundRecord struct {
	RoomID  string    `json:"room_id"`
	PlayerA string    `json:"player_a"`
	PlayerB string    `json:"player_b"`
	MoveA   string    `json:"move_a,omitempty"`
	MoveB   string    `json:"move_b,omitempty"`
	Outcome string    `json:"outcome,omitempty"`
	Reason  string    `json:"reason"`
	EndedAt time.Time `json:"ended_at"`
}

// RoundSummary aggregates finished rounds by end reason.
type RoundSummary struct {
	Total     int64 `json:"total"`
	Completed int64 `json:"completed"`
	Departed  int64 `json:"opponent_departed"`
	TimedOut  int64 `json:"timeout"`
}
