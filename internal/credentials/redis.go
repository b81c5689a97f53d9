package credentials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisStore хранит cookie под ключом {prefix}cookie:{account_id}.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisStore создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "nse:".
func NewRedisStore(ctx context.Context, redisURL, prefix string) (*RedisStore, error) {
	const op = "credentials.redis.NewRedisStore"

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if prefix == "" {
		prefix = "nse:"
	}

	return &RedisStore{rdb: rdb, prefix: prefix}, nil
}

// Client — общий клиент для остальных Redis-компонентов (реестр звонков).
// Закрывается вместе со Store.
func (s *RedisStore) Client() *redis.Client { return s.rdb }

// Ping — проверка готовности для /healthz.
func (s *RedisStore) Ping(ctx context.Context) error {
	const op = "credentials.redis.Ping"

	if err := s.rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *RedisStore) key(accountID uuid.UUID) string {
	return s.prefix + "cookie:" + accountID.String()
}

func (s *RedisStore) Cookie(ctx context.Context, accountID uuid.UUID) (string, error) {
	const op = "credentials.redis.Cookie"

	v, err := s.rdb.Get(ctx, s.key(accountID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("%s: %w", op, ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	return v, nil
}

func (s *RedisStore) SetCookie(ctx context.Context, accountID uuid.UUID, cookie string, ttl time.Duration) error {
	const op = "credentials.redis.SetCookie"

	if err := validate(accountID, cookie); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if ttl < 0 {
		ttl = 0
	}

	if err := s.rdb.Set(ctx, s.key(accountID), cookie, ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *RedisStore) DeleteCookie(ctx context.Context, accountID uuid.UUID) error {
	const op = "credentials.redis.DeleteCookie"

	if err := s.rdb.Del(ctx, s.key(accountID)).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *RedisStore) Close() error { return s.rdb.Close() }

var _ Store = (*RedisStore)(nil)
