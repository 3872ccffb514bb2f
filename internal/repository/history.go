package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/gym_presence/internal/models"
	"github.com/shenikar/gym_presence/internal/service"
)

// SampleHistoryRepository хранит последние выборки пользователя в списке Redis, новые в голове
type SampleHistoryRepository struct {
	redisClient *redis.Client
	size        int
	ttl         time.Duration
}

func NewSampleHistoryRepository(redisClient *redis.Client, size int, ttl time.Duration) service.SampleHistory {
	if size < 1 {
		size = 10
	}
	return &SampleHistoryRepository{
		redisClient: redisClient,
		size:        size,
		ttl:         ttl,
	}
}

func historyKey(userID string) string {
	return fmt.Sprintf("samples:%s", userID)
}

// Recent возвращает сохраненные выборки пользователя, новые первыми
func (r *SampleHistoryRepository) Recent(ctx context.Context, userID string) ([]models.Coordinate, error) {
	vals, err := r.redisClient.LRange(ctx, historyKey(userID), 0, int64(r.size-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read sample history: %w", err)
	}
	return decodeSamples(vals), nil
}

// Append кладет выборку в голову списка и обрезает его до размера истории
func (r *SampleHistoryRepository) Append(ctx context.Context, userID string, sample models.Coordinate) error {
	val, err := json.Marshal(sample)
	if err != nil {
		return fmt.Errorf("failed to marshal sample: %w", err)
	}

	key := historyKey(userID)
	pipe := r.redisClient.TxPipeline()
	pipe.LPush(ctx, key, val)
	pipe.LTrim(ctx, key, 0, int64(r.size-1))
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append sample history: %w", err)
	}
	return nil
}

// decodeSamples пропускает битые записи: история только подсказка для правила скорости
func decodeSamples(vals []string) []models.Coordinate {
	samples := make([]models.Coordinate, 0, len(vals))
	for _, v := range vals {
		var c models.Coordinate
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			continue
		}
		samples = append(samples, c)
	}
	return samples
}
