// Package history keeps a capped per-document log of AI edits in Redis.
// Entries record what the user asked for and how the text changed; the
// editor surfaces them as recent activity.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is one applied AI edit.
type Entry struct {
	Command    string    `json:"command"`
	BeforeText string    `json:"before_text"`
	AfterText  string    `json:"after_text"`
	Confidence float64   `json:"confidence"`
	At         time.Time `json:"at"`
}

// RedisLog stores edit entries newest-first in one Redis list per document,
// trimmed to a fixed cap on every append.
type RedisLog struct {
	client *redis.Client
	prefix string
	cap    int
	ttl    time.Duration
}

func NewRedisLog(client *redis.Client, perDoc int, ttl time.Duration) *RedisLog {
	if perDoc <= 0 {
		perDoc = 50
	}
	return &RedisLog{
		client: client,
		prefix: "edits:",
		cap:    perDoc,
		ttl:    ttl,
	}
}

func (l *RedisLog) key(docID string) string {
	return l.prefix + docID
}

// Append records an edit and trims the list to the per-document cap. The
// key's TTL is refreshed so active documents keep their history.
func (l *RedisLog) Append(ctx context.Context, docID string, e Entry) error {
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	b, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal history entry: %w", err)
	}

	key := l.key(docID)
	pipe := l.client.TxPipeline()
	pipe.LPush(ctx, key, b)
	pipe.LTrim(ctx, key, 0, int64(l.cap-1))
	if l.ttl > 0 {
		pipe.Expire(ctx, key, l.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append history for %s: %w", docID, err)
	}
	return nil
}

// Recent returns up to n entries, newest first. n values outside (0, cap]
// are clamped to the cap.
func (l *RedisLog) Recent(ctx context.Context, docID string, n int) ([]Entry, error) {
	if n <= 0 || n > l.cap {
		n = l.cap
	}
	raw, err := l.client.LRange(ctx, l.key(docID), 0, int64(n-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read history for %s: %w", docID, err)
	}

	out := make([]Entry, 0, len(raw))
	for _, item := range raw {
		var e Entry
		if err := json.Unmarshal([]byte(item), &e); err != nil {
			return nil, fmt.Errorf("decode history entry for %s: %w", docID, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Clear drops all history for a document.
func (l *RedisLog) Clear(ctx context.Context, docID string) error {
	if err := l.client.Del(ctx, l.key(docID)).Err(); err != nil {
		return fmt.Errorf("clear history for %s: %w", docID, err)
	}
	return nil
}

func (l *RedisLog) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}

func (l *RedisLog) Close() error {
	return l.client.Close()
}
