package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/redistest"
	"github.com/m04kA/KingsBarber-BookingService/internal/infra/cache/session"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/auth/models"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func newTestService(t *testing.T) (*Service, *redistest.Fake) {
	t.Helper()
	fake := redistest.New()
	store := session.NewStore(fake, 24*time.Hour)
	accounts := []models.Account{
		{Username: "owner", PasswordHash: hash(t, "crown")},
		{Username: "Alex", PasswordHash: hash(t, "fade"), Barber: "Alex"},
	}
	return NewService(accounts, store, logger.Nop()), fake
}

func TestLoginAuthenticateLogout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, &models.LoginRequest{Username: "alex", Password: "fade"})
	require.NoError(t, err)
	assert.Equal(t, "Alex", resp.Username)
	assert.Equal(t, "Alex", resp.Barber)
	assert.NotEmpty(t, resp.SessionID)

	staff, err := svc.Authenticate(ctx, resp.SessionID)
	require.NoError(t, err)
	assert.Equal(t, domain.Staff{Username: "Alex", Barber: "Alex"}, staff)

	require.NoError(t, svc.Logout(ctx, resp.SessionID))

	_, err = svc.Authenticate(ctx, resp.SessionID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_Rejections(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, &models.LoginRequest{Username: "owner", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "ghost", Password: "crown"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, &models.LoginRequest{Username: "owner"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_SessionStoreFailure(t *testing.T) {
	svc, fake := newTestService(t)
	fake.Err = errors.New("redis down")

	_, err := svc.Login(context.Background(), &models.LoginRequest{Username: "owner", Password: "crown"})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestAuthenticate_UnknownSession(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate(context.Background(), "not-a-session")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestHashPassword(t *testing.T) {
	h, err := HashPassword("crown")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("crown")))

	_, err = HashPassword("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
