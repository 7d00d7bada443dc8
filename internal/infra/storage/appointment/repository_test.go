package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/storagetest"
	"github.com/m04kA/KingsBarber-BookingService/pkg/dbmetrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/txmanager"
)

func newAppointment(code, barber string, start time.Time, minutes int) *domain.Appointment {
	return &domain.Appointment{
		ConfirmationCode: code,
		Barber:           barber,
		CustomerName:     "Sam Carter",
		CustomerPhone:    "+17145550123",
		Services:         []string{"Haircut"},
		StartTime:        start,
		DurationMinutes:  minutes,
		TotalPriceCents:  4000,
		Status:           domain.StatusConfirmed,
		Source:           domain.SourceOnline,
	}
}

func TestRepository_Lifecycle(t *testing.T) {
	db := dbmetrics.Wrap(storagetest.Open(t), nil)
	repo := NewRepository(db)
	ctx := context.Background()

	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	date := domain.CalendarDate{Year: 2026, Month: time.October, Day: 15}

	created, err := repo.Create(ctx, newAppointment("ABCD2345", "Alex", date.At(loc, 13*60), 45))
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = repo.Create(ctx, newAppointment("ABCD2345", "Alex", date.At(loc, 15*60), 30))
	assert.ErrorIs(t, err, ErrDuplicateCode)

	_, err = repo.Create(ctx, newAppointment("ZZZZ9999", "Moe", date.At(loc, 13*60), 30))
	require.NoError(t, err)

	got, err := repo.GetByCode(ctx, "ABCD2345")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, []string{"Haircut"}, got.Services)
	assert.True(t, got.StartTime.Equal(date.At(loc, 13*60)))

	filter := domain.BarberDayFilter{Barber: "Alex", Date: date, Location: loc}
	day, err := repo.ListBarberDay(ctx, filter)
	require.NoError(t, err)
	require.Len(t, day, 1)

	require.NoError(t, repo.UpdateSchedule(ctx, created.ID, date.At(loc, 16*60), 45))
	got, err = repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, got.StartTime.Equal(date.At(loc, 16*60)))

	require.NoError(t, repo.Cancel(ctx, created.ID))
	assert.ErrorIs(t, repo.Cancel(ctx, created.ID), ErrAppointmentNotFound)

	day, err = repo.ListBarberDay(ctx, filter)
	require.NoError(t, err)
	assert.Empty(t, day)

	filter.IncludeInactive = true
	day, err = repo.ListBarberDay(ctx, filter)
	require.NoError(t, err)
	require.Len(t, day, 1)
	assert.Equal(t, domain.StatusCancelled, day[0].Status)
	assert.NotNil(t, day[0].CancelledAt)

	_, err = repo.GetByCode(ctx, "NOPE0000")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestRepository_LockRequiresTransaction(t *testing.T) {
	db := dbmetrics.Wrap(storagetest.Open(t), nil)
	repo := NewRepository(db)

	assert.ErrorIs(t, repo.LockBarberCalendar(context.Background(), "Alex"), ErrNotInTransaction)

	tm := txmanager.NewTransactionManager(db)
	err := tm.DoSerializable(context.Background(), func(ctx context.Context) error {
		return repo.LockBarberCalendar(ctx, "Alex")
	})
	assert.NoError(t, err)
}
