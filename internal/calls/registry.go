package calls

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Registry — реестр активных звонков аккаунта по беседам.
type Registry interface {
	// Exists — в беседе идёт звонок.
	Exists(ctx context.Context, accountID, conversationID uuid.UUID) (bool, error)
	// Start отмечает звонок; запись живёт не дольше ttl.
	Start(ctx context.Context, accountID, conversationID uuid.UUID, ttl time.Duration) error
	// End снимает отметку. Отсутствие записи — не ошибка.
	End(ctx context.Context, accountID, conversationID uuid.UUID) error
}

type callKey struct {
	account      uuid.UUID
	conversation uuid.UUID
}

// MemoryRegistry — in-memory реализация для local-окружения и тестов.
type MemoryRegistry struct {
	mu    sync.Mutex
	calls map[callKey]time.Time
	now   func() time.Time
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{calls: make(map[callKey]time.Time), now: time.Now}
}

func (r *MemoryRegistry) Exists(_ context.Context, accountID, conversationID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := callKey{accountID, conversationID}
	exp, ok := r.calls[k]
	if !ok {
		return false, nil
	}
	if !r.now().Before(exp) {
		delete(r.calls, k)
		return false, nil
	}

	return true, nil
}

func (r *MemoryRegistry) Start(_ context.Context, accountID, conversationID uuid.UUID, ttl time.Duration) error {
	r.mu.Lock()
	r.calls[callKey{accountID, conversationID}] = r.now().Add(ttl)
	r.mu.Unlock()

	return nil
}

func (r *MemoryRegistry) End(_ context.Context, accountID, conversationID uuid.UUID) error {
	r.mu.Lock()
	delete(r.calls, callKey{accountID, conversationID})
	r.mu.Unlock()

	return nil
}

// RedisRegistry хранит отметки под ключом {prefix}call:{account}:{conversation} с TTL.
type RedisRegistry struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisRegistry(rdb *redis.Client, prefix string) *RedisRegistry {
	if prefix == "" {
		prefix = "nse:"
	}

	return &RedisRegistry{rdb: rdb, prefix: prefix}
}

func (r *RedisRegistry) key(accountID, conversationID uuid.UUID) string {
	return r.prefix + "call:" + accountID.String() + ":" + conversationID.String()
}

func (r *RedisRegistry) Exists(ctx context.Context, accountID, conversationID uuid.UUID) (bool, error) {
	const op = "calls.redis.Exists"

	n, err := r.rdb.Exists(ctx, r.key(accountID, conversationID)).Result()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return n > 0, nil
}

func (r *RedisRegistry) Start(ctx context.Context, accountID, conversationID uuid.UUID, ttl time.Duration) error {
	const op = "calls.redis.Start"

	if err := r.rdb.Set(ctx, r.key(accountID, conversationID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *RedisRegistry) End(ctx context.Context, accountID, conversationID uuid.UUID) error {
	const op = "calls.redis.End"

	if err := r.rdb.Del(ctx, r.key(accountID, conversationID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

var (
	_ Registry = (*MemoryRegistry)(nil)
	_ Registry = (*RedisRegistry)(nil)
)
