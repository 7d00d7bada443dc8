package verification

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	codestore "github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/verification"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
)

var phonePattern = regexp.MustCompile(`^\+[1-9]\d{7,14}$`)

// Options параметры подтверждения телефона
type Options struct {
	CodeLength  int
	CodeTTL     time.Duration
	VerifiedTTL time.Duration
	MaxAttempts int
}

// Service сервис подтверждения телефона клиента одноразовым кодом
type Service struct {
	store   CodeStore
	sender  CodeSender
	opts    Options
	logger  Logger
	now     func() time.Time
	newCode func(length int) (string, error)
}

// NewService создает новый экземпляр сервиса подтверждения
func NewService(store CodeStore, sender CodeSender, opts Options, logger Logger) *Service {
	return &Service{
		store:   store,
		sender:  sender,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
		newCode: randomDigits,
	}
}

// Send генерирует новый код и отправляет его по SMS
// Повторная отправка заменяет прежний код и сбрасывает счетчик попыток
func (s *Service) Send(ctx context.Context, req *models.SendRequest) (*models.SendResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	if !phonePattern.MatchString(phone) {
		return nil, fmt.Errorf("%w: phone must be in E.164 format", ErrInvalidInput)
	}

	code, err := s.newCode(s.opts.CodeLength)
	if err != nil {
		return nil, fmt.Errorf("%w: Send - generate code: %v", ErrInternal, err)
	}

	if err := s.store.SaveCode(ctx, phone, code, s.opts.CodeTTL); err != nil {
		s.logger.Error("Send: failed to save code for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: Send - save code: %v", ErrInternal, err)
	}

	if err := s.sender.SendVerificationCode(ctx, phone, code, s.opts.CodeTTL); err != nil {
		s.logger.Warn("Send: failed to deliver code to phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	s.logger.Info("Send: verification code sent to phone=%s", phone)
	return &models.SendResponse{
		Phone:     phone,
		ExpiresAt: s.now().Add(s.opts.CodeTTL),
	}, nil
}

// Confirm проверяет код и отмечает телефон подтвержденным
func (s *Service) Confirm(ctx context.Context, req *models.ConfirmRequest) (*models.ConfirmResponse, error) {
	phone := strings.TrimSpace(req.Phone)
	code := strings.TrimSpace(req.Code)
	if !phonePattern.MatchString(phone) || code == "" {
		return nil, fmt.Errorf("%w: phone and code are required", ErrInvalidInput)
	}

	// 1. Считаем попытку до сравнения, чтобы перебор упирался в лимит
	attempts, err := s.store.IncrAttempts(ctx, phone, s.opts.CodeTTL)
	if err != nil {
		s.logger.Error("Confirm: failed to count attempt for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: Confirm - count attempt: %v", ErrInternal, err)
	}
	if s.opts.MaxAttempts > 0 && attempts > int64(s.opts.MaxAttempts) {
		s.logger.Warn("Confirm: too many attempts for phone=%s", phone)
		return nil, ErrTooManyAttempts
	}

	// 2. Сравниваем с сохраненным кодом
	expected, err := s.store.GetCode(ctx, phone)
	if err != nil {
		if errors.Is(err, codestore.ErrCodeNotFound) {
			return nil, ErrCodeExpired
		}
		s.logger.Error("Confirm: failed to load code for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: Confirm - get code: %v", ErrInternal, err)
	}
	if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) != 1 {
		s.logger.Warn("Confirm: wrong code for phone=%s (attempt %d)", phone, attempts)
		return nil, ErrInvalidCode
	}

	// 3. Код одноразовый
	if err := s.store.DeleteCode(ctx, phone); err != nil {
		s.logger.Error("Confirm: failed to delete code for phone=%s: %v", phone, err)
		return nil, fmt.Errorf("%w: Confirm - delete code: %v", ErrInternal, err)
	}

	// 4. Отмечаем телефон подтвержденным
	if err := s.store.MarkVerified(ctx, phone, s.opts.VerifiedTTL); err != nil {
		s.logger.Error("Confirm: failed to mark phone=%s verified: %v", phone, err)
		return nil, fmt.Errorf("%w: Confirm - mark verified: %v", ErrInternal, err)
	}

	s.logger.Info("Confirm: phone=%s verified", phone)
	return &models.ConfirmResponse{
		Phone:         phone,
		Verified:      true,
		VerifiedUntil: s.now().Add(s.opts.VerifiedTTL),
	}, nil
}

// IsVerified проверяет, подтвержден ли телефон
func (s *Service) IsVerified(ctx context.Context, phone string) (bool, error) {
	ok, err := s.store.IsVerified(ctx, strings.TrimSpace(phone))
	if err != nil {
		return false, fmt.Errorf("%w: IsVerified: %v", ErrInternal, err)
	}
	return ok, nil
}

func randomDigits(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("code length must be positive, got %d", length)
	}
	var b strings.Builder
	b.Grow(length)
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		b.WriteByte(byte('0' + n.Int64()))
	}
	return b.String(), nil
}
