package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/YukiGDMG/TCP-IP/internal/entity"
)

const (
	recentKey  = "rounds:recent"
	summaryKey = "rounds:summary"

	// recentLimit caps the recent-round list; older entries are trimmed away.
	recentLimit = 50
)

// RoundHistory stores finished rounds. Recording is best-effort: live game
// state never depends on it.
type RoundHistory interface {
	RecordRound(ctx context.Context, record *entity.RoundRecord) error
	Summary(ctx context.Context) (*entity.RoundSummary, error)
	Recent(ctx context.Context, limit int) ([]*entity.RoundRecord, error)
}

type redisHistory struct {
	client *redis.Client
}

// NewRedisHistory stores rounds in redis: a trimmed list of recent rounds and
// a hash of per-reason counters.
func NewRedisHistory(client *redis.Client) RoundHistory {
	return &redisHistory{
		client: client,
	}
}

func (that *redisHistory) RecordRound(ctx context.Context, record *entity.RoundRecord) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal round: %w", err)
	}

	pipe := that.client.TxPipeline()
	pipe.LPush(ctx, recentKey, payload)
	pipe.LTrim(ctx, recentKey, 0, recentLimit-1)
	pipe.HIncrBy(ctx, summaryKey, record.Reason, 1)

	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to record round: %w", err)
	}

	return nil
}

func (that *redisHistory) Summary(ctx context.Context) (*entity.RoundSummary, error) {
	counters, err := that.client.HGetAll(ctx, summaryKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get round summary: %w", err)
	}

	summary := &entity.RoundSummary{}
	for reason, raw := range counters {
		count, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			return nil, fmt.Errorf("failed to parse counter %q: %w", reason, parseErr)
		}

		summary.Total += count

		switch reason {
		case entity.ReasonCompleted:
			summary.Completed = count
		case entity.ReasonOpponentDeparted:
			summary.Departed = count
		case entity.ReasonTimeout:
			summary.TimedOut = count
		}
	}

	return summary, nil
}

func (that *redisHistory) Recent(ctx context.Context, limit int) ([]*entity.RoundRecord, error) {
	if limit <= 0 || limit > recentLimit {
		limit = recentLimit
	}

	raw, err := that.client.LRange(ctx, recentKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get recent rounds: %w", err)
	}

	records := make([]*entity.RoundRecord, 0, len(raw))
	for _, item := range raw {
		var record entity.RoundRecord
		if err = json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}
		records = append(records, &record)
	}

	return records, nil
}
