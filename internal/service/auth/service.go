package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/session"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/auth/models"
)

// dummyHash сравнивается при неизвестном логине, чтобы время ответа не выдавало существование учетной записи
var dummyHash = []byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5BWX4Z3xvQh9sJ6F1jv6hZk2xA6mG")

// Service сервис аутентификации сотрудников
type Service struct {
	accounts map[string]models.Account
	sessions SessionStore
	logger   Logger
}

// NewService создает новый экземпляр сервиса аутентификации
func NewService(accounts []models.Account, sessions SessionStore, logger Logger) *Service {
	byName := make(map[string]models.Account, len(accounts))
	for _, acc := range accounts {
		byName[strings.ToLower(acc.Username)] = acc
	}
	return &Service{
		accounts: byName,
		sessions: sessions,
		logger:   logger,
	}
}

// Login проверяет пароль сотрудника и открывает сессию
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	username := strings.TrimSpace(req.Username)
	s.logger.Info("Login: attempt for username=%s", username)

	if username == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	acc, ok := s.accounts[strings.ToLower(username)]
	if !ok {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(req.Password))
		s.logger.Warn("Login: unknown username=%s", username)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for username=%s", username)
		return nil, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, acc.Username, acc.Barber)
	if err != nil {
		s.logger.Error("Login: failed to create session for username=%s: %v", username, err)
		return nil, fmt.Errorf("%w: Login - create session: %v", ErrInternal, err)
	}

	s.logger.Info("Login: username=%s logged in", acc.Username)
	return &models.LoginResponse{
		SessionID: sess.ID,
		Username:  sess.Username,
		Barber:    sess.Barber,
		ExpiresAt: sess.ExpiresAt,
	}, nil
}

// Authenticate возвращает сотрудника по идентификатору сессии
func (s *Service) Authenticate(ctx context.Context, sessionID string) (domain.Staff, error) {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return domain.Staff{}, ErrUnauthorized
		}
		s.logger.Error("Authenticate: session store error: %v", err)
		return domain.Staff{}, fmt.Errorf("%w: Authenticate - get session: %v", ErrInternal, err)
	}

	// Учетную запись могли удалить из конфигурации после входа
	if _, ok := s.accounts[strings.ToLower(sess.Username)]; !ok {
		s.logger.Warn("Authenticate: session for removed account username=%s", sess.Username)
		return domain.Staff{}, ErrUnauthorized
	}

	return domain.Staff{Username: sess.Username, Barber: sess.Barber}, nil
}

// Logout закрывает сессию
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		s.logger.Error("Logout: session store error: %v", err)
		return fmt.Errorf("%w: Logout - delete session: %v", ErrInternal, err)
	}
	s.logger.Info("Logout: session closed")
	return nil
}

// HashPassword возвращает bcrypt-хеш пароля для конфигурации staff.accounts
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
