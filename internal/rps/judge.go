package rps

import "strings"

const (
	MoveRock     = "rock"
	MovePaper    = "paper"
	MoveScissors = "scissors"
)

// Outcome is the judging result for a pair of moves, from player A's side.
type Outcome string

const (
	OutcomeAWins   Outcome = "a_wins"
	OutcomeBWins   Outcome = "b_wins"
	OutcomeDraw    Outcome = "draw"
	OutcomeInvalid Outcome = "invalid"
)

// beats maps each move to the move it defeats.
var beats = map[string]string{
	MoveRock:     MoveScissors,
	MoveScissors: MovePaper,
	MovePaper:    MoveRock,
}

// Normalize lowercases a raw move string and strips surrounding whitespace.
func Normalize(move string) string {
	return strings.ToLower(strings.TrimSpace(move))
}

// Judge maps two moves to an outcome. Moves are normalized before evaluation.
// Identical moves are a draw, checked before validity; otherwise a move
// outside rock/paper/scissors makes the pair invalid.
func Judge(moveA, moveB string) Outcome {
	a, b := Normalize(moveA), Normalize(moveB)

	if a == b {
		return OutcomeDraw
	}

	loserOfA, okA := beats[a]
	if _, okB := beats[b]; !okA || !okB {
		return OutcomeInvalid
	}

	if loserOfA == b {
		return OutcomeAWins
	}

	return OutcomeBWins
}
