package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/uofr/moodle-block-export-quiz/internal/domain/entity"
	"github.com/uofr/moodle-block-export-quiz/internal/domain/repository"
)

// SlotCache кеширует список викторин с вопросами для блока курса.
// Разрешение слотов для экспорта всегда идет в базу.
type SlotCache struct {
	next   repository.SlotRepository
	client redis.UniversalClient
	ttl    time.Duration
}

// NewSlotCache оборачивает репозиторий слотов кешем Redis
func NewSlotCache(next repository.SlotRepository, client redis.UniversalClient, ttl time.Duration) (*SlotCache, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for SlotCache")
	}
	if next == nil {
		return nil, fmt.Errorf("slot repository cannot be nil for SlotCache")
	}
	return &SlotCache{next: next, client: client, ttl: ttl}, nil
}

// ResolveSlots не кешируется: экспорт должен видеть последние версии вопросов
func (c *SlotCache) ResolveSlots(ctx context.Context, quizID, quizContextID uint) ([]entity.SlotResolution, error) {
	return c.next.ResolveSlots(ctx, quizID, quizContextID)
}

// QuizzesWithQuestions returns the cached answer for the same set of quizzes,
// falling back to the database on a miss or any Redis error.
func (c *SlotCache) QuizzesWithQuestions(ctx context.Context, quizIDs []uint) ([]uint, error) {
	if len(quizIDs) == 0 {
		return nil, nil
	}
	key := quizSetKey(quizIDs)

	cached, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		var ids []uint
		if jsonErr := json.Unmarshal([]byte(cached), &ids); jsonErr == nil {
			return ids, nil
		}
		log.Printf("[SlotCache] Corrupted entry %s, reloading", key)
	case !errors.Is(err, redis.Nil):
		log.Printf("[SlotCache] Redis error for key %s: %v", key, err)
	}

	ids, err := c.next.QuizzesWithQuestions(ctx, quizIDs)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(ids)
	if err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Printf("[SlotCache] Failed to store %s: %v", key, err)
		}
	}
	return ids, nil
}

// quizSetKey строит ключ, не зависящий от порядка ID
func quizSetKey(quizIDs []uint) string {
	sorted := append([]uint(nil), quizIDs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return "block:quizzes:" + strings.Join(parts, ",")
}
