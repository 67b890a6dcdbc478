package session

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis keys for the two persisted session entries.
const (
	keyToken = "examboard:session:token"
	keyUser  = "examboard:session:user"
)

// RedisStore persists the session in Redis so it survives gateway
// restarts. Both entries are written in one MULTI/EXEC transaction and
// deleted with a single DEL, keeping the token-iff-user invariant even
// if the process dies mid-write.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a RedisStore on the given client.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

// Load implements Store.
func (s *RedisStore) Load(ctx context.Context) (string, []byte, error) {
	vals, err := s.rdb.MGet(ctx, keyToken, keyUser).Result()
	if err != nil {
		return "", nil, fmt.Errorf("load session: %w", err)
	}

	token, tokenOK := vals[0].(string)
	user, userOK := vals[1].(string)
	if !tokenOK || !userOK || token == "" {
		return "", nil, ErrNoSession
	}
	return token, []byte(user), nil
}

// Save implements Store.
func (s *RedisStore) Save(ctx context.Context, token string, user []byte) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, keyToken, token, 0)
		pipe.Set(ctx, keyUser, user, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, keyToken, keyUser).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
