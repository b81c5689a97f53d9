package credentials

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	cookie    string
	expiresAt time.Time
}

// MemoryStore — in-memory реализация Store для local-окружения и тестов.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[uuid.UUID]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Cookie(ctx context.Context, accountID uuid.UUID) (string, error) {
	const op = "credentials.memory.Cookie"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.mu.RLock()
	e, ok := s.entries[accountID]
	s.mu.RUnlock()

	if !ok || (!e.expiresAt.IsZero() && !s.now().Before(e.expiresAt)) {
		return "", fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	return e.cookie, nil
}

func (s *MemoryStore) SetCookie(ctx context.Context, accountID uuid.UUID, cookie string, ttl time.Duration) error {
	const op = "credentials.memory.SetCookie"

	if err := validate(accountID, cookie); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e := memoryEntry{cookie: cookie}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[accountID] = e
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) DeleteCookie(ctx context.Context, accountID uuid.UUID) error {
	const op = "credentials.memory.DeleteCookie"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	delete(s.entries, accountID)
	s.mu.Unlock()

	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
