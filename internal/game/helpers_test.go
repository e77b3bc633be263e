package game

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
	"github.com/YukiGDMG/TCP-IP/internal/protocol"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSender captures everything a session would have received.
type fakeSender struct {
	mu       sync.Mutex
	messages []*protocol.Message
}

func (that *fakeSender) Send(msg *protocol.Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.messages = append(that.messages, msg)

	return nil
}

func (that *fakeSender) all() []*protocol.Message {
	that.mu.Lock()
	defer that.mu.Unlock()

	out := make([]*protocol.Message, len(that.messages))
	copy(out, that.messages)

	return out
}

func (that *fakeSender) countEvent(event string) int {
	count := 0
	for _, msg := range that.all() {
		if msg.Type == protocol.TypeNotification && msg.Event == event {
			count++
		}
	}

	return count
}

func (that *fakeSender) lastEvent(event string) *protocol.Message {
	var found *protocol.Message
	for _, msg := range that.all() {
		if msg.Type == protocol.TypeNotification && msg.Event == event {
			found = msg
		}
	}

	return found
}

func (that *fakeSender) results() []*protocol.Message {
	var out []*protocol.Message
	for _, msg := range that.all() {
		if msg.Type == protocol.TypeResult {
			out = append(out, msg)
		}
	}

	return out
}

// fakeHistory records rounds in memory for assertions.
type fakeHistory struct {
	mu      sync.Mutex
	records []*entity.RoundRecord
}

func (that *fakeHistory) RecordRound(_ context.Context, record *entity.RoundRecord) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.records = append(that.records, record)

	return nil
}

func (that *fakeHistory) Recent(_ context.Context, limit int) ([]*entity.RoundRecord, error) {
	records := that.all()
	if limit > 0 && limit < len(records) {
		records = records[:limit]
	}

	return records, nil
}

func (that *fakeHistory) Summary(_ context.Context) (*entity.RoundSummary, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	summary := &entity.RoundSummary{Total: int64(len(that.records))}

	return summary, nil
}

func (that *fakeHistory) all() []*entity.RoundRecord {
	that.mu.Lock()
	defer that.mu.Unlock()

	out := make([]*entity.RoundRecord, len(that.records))
	copy(out, that.records)

	return out
}
