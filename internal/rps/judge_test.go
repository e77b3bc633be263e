package rps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allMoves = []string{MoveRock, MovePaper, MoveScissors}

func TestJudge(t *testing.T) {
	tests := []struct {
		name     string
		moveA    string
		moveB    string
		expected Outcome
	}{
		{"rock beats scissors", MoveRock, MoveScissors, OutcomeAWins},
		{"scissors beats paper", MoveScissors, MovePaper, OutcomeAWins},
		{"paper beats rock", MovePaper, MoveRock, OutcomeAWins},
		{"scissors loses to rock", MoveScissors, MoveRock, OutcomeBWins},
		{"paper loses to scissors", MovePaper, MoveScissors, OutcomeBWins},
		{"rock loses to paper", MoveRock, MovePaper, OutcomeBWins},
		{"rock draws rock", MoveRock, MoveRock, OutcomeDraw},
		{"paper draws paper", MovePaper, MovePaper, OutcomeDraw},
		{"scissors draws scissors", MoveScissors, MoveScissors, OutcomeDraw},
		{"unknown first move", "lizard", MoveRock, OutcomeInvalid},
		{"unknown second move", MoveRock, "spock", OutcomeInvalid},
		{"empty move", "", MoveScissors, OutcomeInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, Judge(tt.moveA, tt.moveB))
		})
	}
}

func TestJudge_SwappedArgumentsInvertOutcome(t *testing.T) {
	for _, a := range allMoves {
		for _, b := range allMoves {
			// Given: any pair of valid moves
			forward := Judge(a, b)
			backward := Judge(b, a)

			// Then: swapping arguments swaps the winner and preserves draws
			switch forward {
			case OutcomeAWins:
				assert.Equal(t, OutcomeBWins, backward, "%s vs %s", a, b)
			case OutcomeBWins:
				assert.Equal(t, OutcomeAWins, backward, "%s vs %s", a, b)
			case OutcomeDraw:
				assert.Equal(t, OutcomeDraw, backward, "%s vs %s", a, b)
			default:
				t.Fatalf("unexpected outcome %s for %s vs %s", forward, a, b)
			}
		}
	}
}

func TestJudge_NormalizesInput(t *testing.T) {
	// Given: moves with mixed case and surrounding whitespace
	// Then: they judge the same as their canonical form
	assert.Equal(t, OutcomeAWins, Judge("  Rock ", "SCISSORS"))
	assert.Equal(t, OutcomeDraw, Judge("PAPER", " paper\n"))
}

func TestJudge_IdenticalUnknownMovesDraw(t *testing.T) {
	// The equality check runs before validity, so two identical unknown
	// moves still read as a draw.
	assert.Equal(t, OutcomeDraw, Judge("lizard", "lizard"))
}
