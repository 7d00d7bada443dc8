package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "kingsbarber:session:"

// Session сессия сотрудника барбершопа
type Session struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Barber    string    `json:"barber,omitempty"` // пусто для менеджера
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store хранит сессии в redis с фиксированным TTL
type Store struct {
	client Client
	ttl    time.Duration
	now    func() time.Time
}

// NewStore создает хранилище сессий
func NewStore(client Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl, now: time.Now}
}

// Create создает новую сессию со случайным идентификатором
func (s *Store) Create(ctx context.Context, username, barber string) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		Username:  username,
		Barber:    barber,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	payload, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal session: %v", ErrStore, err)
	}

	if err := s.client.Set(ctx, keyPrefix+sess.ID, payload, s.ttl).Err(); err != nil {
		return nil, fmt.Errorf("%w: set session: %w", ErrStore, err)
	}

	return sess, nil
}

// Get возвращает действующую сессию
func (s *Store) Get(ctx context.Context, id string) (*Session, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrSessionNotFound
	}

	payload, err := s.client.Get(ctx, keyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: get session: %w", ErrStore, err)
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, fmt.Errorf("%w: unmarshal session: %v", ErrStore, err)
	}

	return &sess, nil
}

// Delete удаляет сессию. Удаление несуществующей сессии не является ошибкой
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("%w: delete session: %w", ErrStore, err)
	}
	return nil
}
