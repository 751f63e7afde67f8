package view

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"newsum/internal/summary"
)

// ErrNotFound is returned for an unknown or expired view id.
var ErrNotFound = errors.New("view not found or expired")

// Entry is a stored result together with the article it came from.
type Entry struct {
	ArticleURL string           `json:"article_url"`
	Summary    *summary.Summary `json:"summary"`
	Preview    *Preview         `json:"preview,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// Preview is the article header shown above the card.
type Preview struct {
	Title    string `json:"title"`
	SiteName string `json:"site_name,omitempty"`
	Excerpt  string `json:"excerpt,omitempty"`
}

// Store keeps results between page renders so that switching presets
// re-reads a result instead of calling the API again.
type Store interface {
	Put(ctx context.Context, e *Entry) (string, error)
	Get(ctx context.Context, id string) (*Entry, error)
}

// NewID returns a fresh view identifier.
func NewID() string {
	return uuid.NewString()
}

// NewStore picks the redis store when rdb is set, the memory store otherwise.
func NewStore(rdb *redis.Client, ttl time.Duration) Store {
	if rdb != nil {
		log.Printf("[ViewStore] using redis at %s (ttl=%s)", rdb.Options().Addr, ttl)
		return NewRedisStore(rdb, ttl)
	}
	log.Printf("[ViewStore] using in-memory store (ttl=%s)", ttl)
	return NewMemoryStore(ttl)
}

const viewKeyFmt = "summary:view:%s"

// RedisStore keeps entries as JSON under summary:view:<id> with a TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func (s *RedisStore) Put(ctx context.Context, e *Entry) (string, error) {
	raw, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("failed to encode view: %w", err)
	}
	id := NewID()
	if err := s.rdb.Set(ctx, fmt.Sprintf(viewKeyFmt, id), raw, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to store view: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (*Entry, error) {
	raw, err := s.rdb.Get(ctx, fmt.Sprintf(viewKeyFmt, id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load view: %w", err)
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("failed to decode view: %w", err)
	}
	return &e, nil
}

// MemoryStore is a process-local Store. Expired entries are dropped on access.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	entry   *Entry
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, entries: make(map[string]memoryEntry), now: time.Now}
}

func (s *MemoryStore) Put(_ context.Context, e *Entry) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, m := range s.entries {
		if s.expired(m, now) {
			delete(s.entries, id)
		}
	}
	id := NewID()
	s.entries[id] = memoryEntry{entry: e, expires: now.Add(s.ttl)}
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	if s.expired(m, s.now()) {
		delete(s.entries, id)
		return nil, ErrNotFound
	}
	return m.entry, nil
}

// expired treats a zero ttl as "never expires".
func (s *MemoryStore) expired(m memoryEntry, now time.Time) bool {
	return s.ttl > 0 && now.After(m.expires)
}
