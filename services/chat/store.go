package chat

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"counselconnect/models"

	"github.com/go-redis/redis/v8"
)

// SessionTTL is the idle timeout of a conversation. A session untouched for
// this long expires and the client starts over.
const SessionTTL = 30 * time.Minute

// advanceLockTTL bounds how long one in-flight message may hold a session.
const advanceLockTTL = 10 * time.Second

const (
	sessionKeyPrefix = "chat:sess:"
	lockKeyPrefix    = "chat:lock:"
)

// ErrSessionNotFound means the session never existed or has expired.
var ErrSessionNotFound = errors.New("chat session not found or expired")

// ErrSessionBusy means another message for the same session is still being
// processed. Messages are serialized per session.
var ErrSessionBusy = errors.New("chat session is processing another message")

// SessionStore persists conversations between messages, keyed by an
// explicit session ID so concurrent clients never collide.
type SessionStore interface {
	Save(ctx context.Context, session *models.ChatSession) error
	Get(ctx context.Context, sessionID string) (*models.ChatSession, error)
	Delete(ctx context.Context, sessionID string) error
	// Lock claims the session for one in-flight message.
	Lock(ctx context.Context, sessionID string) (bool, error)
	Unlock(ctx context.Context, sessionID string)
}

// RedisSessionStore implements SessionStore on Redis with a TTL that
// refreshes on every save.
type RedisSessionStore struct {
	Client *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{Client: client}
}

func (s *RedisSessionStore) Save(ctx context.Context, session *models.ChatSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionKeyPrefix+session.SessionID, data, SessionTTL).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.ChatSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.ChatSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func (s *RedisSessionStore) Lock(ctx context.Context, sessionID string) (bool, error) {
	return s.Client.SetNX(ctx, lockKeyPrefix+sessionID, "1", advanceLockTTL).Result()
}

func (s *RedisSessionStore) Unlock(ctx context.Context, sessionID string) {
	s.Client.Del(ctx, lockKeyPrefix+sessionID)
}
