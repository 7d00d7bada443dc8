package verification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	codePrefix     = "kingsbarber:verify:code:"
	attemptsPrefix = "kingsbarber:verify:attempts:"
	verifiedPrefix = "kingsbarber:verify:ok:"
)

// Store хранит одноразовые коды подтверждения телефона и отметки о подтверждении
type Store struct {
	client Client
}

// NewStore создает хранилище кодов
func NewStore(client Client) *Store {
	return &Store{client: client}
}

// SaveCode сохраняет новый код и сбрасывает счетчик попыток
func (s *Store) SaveCode(ctx context.Context, phone, code string, ttl time.Duration) error {
	if err := s.client.Set(ctx, codePrefix+phone, code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: save code: %w", ErrStore, err)
	}
	if err := s.client.Del(ctx, attemptsPrefix+phone).Err(); err != nil {
		return fmt.Errorf("%w: reset attempts: %w", ErrStore, err)
	}
	return nil
}

// GetCode возвращает действующий код для телефона
func (s *Store) GetCode(ctx context.Context, phone string) (string, error) {
	code, err := s.client.Get(ctx, codePrefix+phone).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: get code: %w", ErrStore, err)
	}
	return code, nil
}

// DeleteCode удаляет код вместе со счетчиком попыток
func (s *Store) DeleteCode(ctx context.Context, phone string) error {
	if err := s.client.Del(ctx, codePrefix+phone, attemptsPrefix+phone).Err(); err != nil {
		return fmt.Errorf("%w: delete code: %w", ErrStore, err)
	}
	return nil
}

// IncrAttempts увеличивает счетчик неудачных попыток, который живет не дольше ttl
func (s *Store) IncrAttempts(ctx context.Context, phone string, ttl time.Duration) (int64, error) {
	key := attemptsPrefix + phone
	n, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: incr attempts: %w", ErrStore, err)
	}
	if n == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("%w: expire attempts: %w", ErrStore, err)
		}
	}
	return n, nil
}

// MarkVerified отмечает телефон подтвержденным на ttl
func (s *Store) MarkVerified(ctx context.Context, phone string, ttl time.Duration) error {
	if err := s.client.Set(ctx, verifiedPrefix+phone, "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: mark verified: %w", ErrStore, err)
	}
	return nil
}

// IsVerified проверяет, подтвержден ли телефон
func (s *Store) IsVerified(ctx context.Context, phone string) (bool, error) {
	n, err := s.client.Exists(ctx, verifiedPrefix+phone).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check verified: %w", ErrStore, err)
	}
	return n > 0, nil
}
