package verification

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/redistest"
	codestore "github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/verification"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/verification/models"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

const phone = "+17145550123"

type fakeSender struct {
	codes []string
	err   error
}

func (f *fakeSender) SendVerificationCode(_ context.Context, _, code string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.codes = append(f.codes, code)
	return nil
}

func newTestService() (*Service, *fakeSender, *redistest.Fake) {
	fake := redistest.New()
	sender := &fakeSender{}
	svc := NewService(codestore.NewStore(fake), sender, Options{
		CodeLength:  6,
		CodeTTL:     5 * time.Minute,
		VerifiedTTL: 30 * time.Minute,
		MaxAttempts: 3,
	}, logger.Nop())
	return svc, sender, fake
}

func TestSendAndConfirm(t *testing.T) {
	svc, sender, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendRequest{Phone: phone})
	require.NoError(t, err)
	require.Len(t, sender.codes, 1)
	assert.Len(t, sender.codes[0], 6)

	ok, err := svc.IsVerified(ctx, phone)
	require.NoError(t, err)
	assert.False(t, ok)

	resp, err := svc.Confirm(ctx, &models.ConfirmRequest{Phone: phone, Code: sender.codes[0]})
	require.NoError(t, err)
	assert.True(t, resp.Verified)

	ok, err = svc.IsVerified(ctx, phone)
	require.NoError(t, err)
	assert.True(t, ok)

	// Код одноразовый
	_, err = svc.Confirm(ctx, &models.ConfirmRequest{Phone: phone, Code: sender.codes[0]})
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestConfirm_WrongCodeAndAttemptLimit(t *testing.T) {
	svc, _, _ := newTestService()
	svc.newCode = func(int) (string, error) { return "123456", nil }
	ctx := context.Background()

	_, err := svc.Send(ctx, &models.SendRequest{Phone: phone})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = svc.Confirm(ctx, &models.ConfirmRequest{Phone: phone, Code: "000000"})
		assert.ErrorIs(t, err, ErrInvalidCode)
	}

	_, err = svc.Confirm(ctx, &models.ConfirmRequest{Phone: phone, Code: "123456"})
	assert.ErrorIs(t, err, ErrTooManyAttempts)

	// Новый код сбрасывает счетчик
	_, err = svc.Send(ctx, &models.SendRequest{Phone: phone})
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, &models.ConfirmRequest{Phone: phone, Code: "123456"})
	assert.NoError(t, err)
}

func TestConfirm_NotRequested(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Confirm(context.Background(), &models.ConfirmRequest{Phone: phone, Code: "123456"})
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestSend_Failures(t *testing.T) {
	t.Run("invalid phone", func(t *testing.T) {
		svc, _, _ := newTestService()
		_, err := svc.Send(context.Background(), &models.SendRequest{Phone: "714-555-0123"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("delivery", func(t *testing.T) {
		svc, sender, _ := newTestService()
		sender.err = errors.New("gateway down")
		_, err := svc.Send(context.Background(), &models.SendRequest{Phone: phone})
		assert.ErrorIs(t, err, ErrDeliveryFailed)
	})

	t.Run("store", func(t *testing.T) {
		svc, _, fake := newTestService()
		fake.Err = errors.New("redis down")
		_, err := svc.Send(context.Background(), &models.SendRequest{Phone: phone})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestRandomDigits(t *testing.T) {
	code, err := randomDigits(6)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{6}$`, code)

	_, err = randomDigits(0)
	assert.Error(t, err)
}
