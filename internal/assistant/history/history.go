// Package history keeps a bounded log of answered queries in Redis.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultKey  = "assistant:history"
	DefaultSize = 50
)

// Entry is one answered query.
type Entry struct {
	RequestID string    `json:"requestId"`
	Query     string    `json:"query"`
	Intent    string    `json:"intent"`
	ErrorCode string    `json:"errorCode,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder stores answered queries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
	Recent(ctx context.Context, n int) ([]Entry, error)
	IntentCounts(ctx context.Context) (map[string]int64, error)
}

// RedisRecorder keeps the newest entries in a capped list and a per-intent counter hash.
type RedisRecorder struct {
	client *redis.Client
	key    string
	size   int64
}

// NewRedisRecorder returns a recorder writing under key, keeping at most size entries.
func NewRedisRecorder(client *redis.Client, key string, size int) *RedisRecorder {
	if key == "" {
		key = DefaultKey
	}
	if size <= 0 {
		size = DefaultSize
	}
	return &RedisRecorder{client: client, key: key, size: int64(size)}
}

func (r *RedisRecorder) countsKey() string {
	return r.key + ":intents"
}

func (r *RedisRecorder) Record(ctx context.Context, e Entry) error {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.key, data)
		pipe.LTrim(ctx, r.key, 0, r.size-1)
		pipe.HIncrBy(ctx, r.countsKey(), e.Intent, 1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("record history: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (r *RedisRecorder) Recent(ctx context.Context, n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}
	raw, err := r.client.LRange(ctx, r.key, 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// IntentCounts returns how often each intent has been recorded.
func (r *RedisRecorder) IntentCounts(ctx context.Context) (map[string]int64, error) {
	raw, err := r.client.HGetAll(ctx, r.countsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("read intent counts: %w", err)
	}
	counts := make(map[string]int64, len(raw))
	for intent, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("intent count %q: %w", intent, err)
		}
		counts[intent] = n
	}
	return counts, nil
}

// Nop discards everything.
type Nop struct{}

func (Nop) Record(context.Context, Entry) error                   { return nil }
func (Nop) Recent(context.Context, int) ([]Entry, error)          { return nil, nil }
func (Nop) IntentCounts(context.Context) (map[string]int64, error) { return map[string]int64{}, nil }
