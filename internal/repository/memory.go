package repository

import (
	"context"
	"sync"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
)

// memoryHistory is the default history: in-process only, lost on restart,
// matching the server's no-persistence surface when redis is disabled.
type memoryHistory struct {
	mu      sync.Mutex
	recent  []*entity.RoundRecord
	summary entity.RoundSummary
}

func NewMemoryHistory() RoundHistory {
	return &memoryHistory{}
}

func (that *memoryHistory) RecordRound(_ context.Context, record *entity.RoundRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.recent = append([]*entity.RoundRecord{record}, that.recent...)
	if len(that.recent) > recentLimit {
		that.recent = that.recent[:recentLimit]
	}

	that.summary.Total++
	switch record.Reason {
	case entity.ReasonCompleted:
		that.summary.Completed++
	case entity.ReasonOpponentDeparted:
		that.summary.Departed++
	case entity.ReasonTimeout:
		that.summary.TimedOut++
	}

	return nil
}

func (that *memoryHistory) Summary(_ context.Context) (*entity.RoundSummary, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	summary := that.summary

	return &summary, nil
}

func (that *memoryHistory) Recent(_ context.Context, limit int) ([]*entity.RoundRecord, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if limit <= 0 || limit > len(that.recent) {
		limit = len(that.recent)
	}

	records := make([]*entity.RoundRecord, limit)
	copy(records, that.recent[:limit])

	return records, nil
}
