package game

import (
	"context"
	"log/slog"
	"time"
)

// DefaultMatchInterval is the matchmaker's fallback polling period.
const DefaultMatchInterval = 500 * time.Millisecond

// Matchmaker is the independent pairing loop, decoupled from any individual
// connection. It wakes on every enqueue and on a fixed tick as a fallback,
// then drains the queue two sessions at a time.
type Matchmaker struct {
	logger   *slog.Logger
	manager  *Manager
	interval time.Duration
}

func NewMatchmaker(logger *slog.Logger, manager *Manager) *Matchmaker {
	return &Matchmaker{
		logger:   logger.With("component", "matchmaker"),
		manager:  manager,
		interval: DefaultMatchInterval,
	}
}

// Run blocks until the context is cancelled.
func (that *Matchmaker) Run(ctx context.Context) {
	ticker := time.NewTicker(that.interval)
	defer ticker.Stop()

	that.logger.Info("matchmaker started", "interval", that.interval)

	for {
		select {
		case <-ctx.Done():
			that.logger.Info("matchmaker stopped")
			return
		case <-that.manager.queue.Wake():
		case <-ticker.C:
		}

		that.PairAll()
	}
}

// PairAll extracts FIFO pairs until fewer than two sessions remain. Pairing
// is unconditional: no skill, nickname, or preference filtering. The queue
// lock is released before each room's start notifications go out.
func (that *Matchmaker) PairAll() {
	for {
		playerA, playerB, ok := that.manager.queue.TakePair()
		if !ok {
			return
		}

		room := that.manager.startRoom(playerA, playerB)
		that.logger.Info("players matched",
			"room_id", room.ID,
			"player_a", playerA.Nickname,
			"player_b", playerB.Nickname,
		)
	}
}
