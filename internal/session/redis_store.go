package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (s *RedisStore) Create(ctx context.Context, sess Session) (string, error) {
	id := uuid.NewString()

	payload, err := json.Marshal(sess)

	if err != nil {
		return "", err
	}

	err = s.client.Set(ctx, sessionKey(id), payload, s.ttl).Err()

	if err != nil {
		return "", err
	}

	return id, nil
}

func (s *RedisStore) Get(ctx context.Context, id string) (Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Result()

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, err
	}

	var sess Session

	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		// a corrupt record is as good as no record
		return Session{}, ErrSessionNotFound
	}

	return sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}
