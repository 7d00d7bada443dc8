package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/KingsBarber-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/KingsBarber-BookingService/internal/scheduling"
	"github.com/m04kA/KingsBarber-BookingService/internal/service/notifications"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
	"github.com/m04kA/KingsBarber-BookingService/pkg/metrics"
	"github.com/m04kA/KingsBarber-BookingService/pkg/txmanager"
)

type txKey struct{}

type fakeRepo struct {
	snapshots  [][]*domain.Appointment // ответ ListBarberDay по номеру вызова, последний повторяется
	listErr    error
	lockErr    error
	createErrs []error

	listCalls   int
	listInTx    []bool
	locked      []string
	created     []*domain.Appointment
	createCalls int
}

func (f *fakeRepo) ListBarberDay(ctx context.Context, _ domain.BarberDayFilter) ([]*domain.Appointment, error) {
	f.listInTx = append(f.listInTx, ctx.Value(txKey{}) != nil)
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.snapshots) == 0 {
		return nil, nil
	}
	i := min(f.listCalls, len(f.snapshots)) - 1
	return f.snapshots[i], nil
}

func (f *fakeRepo) LockBarberCalendar(ctx context.Context, barber string) error {
	if ctx.Value(txKey{}) == nil {
		return appointmentRepo.ErrNotInTransaction
	}
	if f.lockErr != nil {
		return f.lockErr
	}
	f.locked = append(f.locked, barber)
	return nil
}

func (f *fakeRepo) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	f.createCalls++
	if f.createCalls <= len(f.createErrs) {
		if err := f.createErrs[f.createCalls-1]; err != nil {
			return nil, err
		}
	}
	appt.ID = int64(100 + f.createCalls)
	appt.CreatedAt = time.Date(2026, 10, 14, 17, 0, 0, 0, time.UTC)
	f.created = append(f.created, appt)
	return appt, nil
}

type fakeTx struct {
	commitErr error
	calls     int
}

func (f *fakeTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		return err
	}
	return f.commitErr
}

type fakeAwayDays struct {
	away bool
	err  error
}

func (f *fakeAwayDays) IsAway(context.Context, string, domain.CalendarDate) (bool, error) {
	return f.away, f.err
}

type fakeVerifier struct {
	verified map[string]bool
	err      error
}

func (f *fakeVerifier) IsVerified(_ context.Context, phone string) (bool, error) {
	return f.verified[phone], f.err
}

type fakeNotifier struct {
	kinds []notifications.Kind
	appts []*domain.Appointment
}

func (f *fakeNotifier) Notify(_ context.Context, kind notifications.Kind, appt *domain.Appointment) {
	f.kinds = append(f.kinds, kind)
	f.appts = append(f.appts, appt)
}

type fakeMetrics struct {
	outcomes []string
}

func (f *fakeMetrics) RecordBooking(operation, outcome string) {
	f.outcomes = append(f.outcomes, operation+":"+outcome)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time {
	return f.now
}

const customerPhone = "+17145550123"

type fixture struct {
	repo     *fakeRepo
	tx       *fakeTx
	away     *fakeAwayDays
	verifier *fakeVerifier
	notifier *fakeNotifier
	metrics  *fakeMetrics
	loc      *time.Location
	now      time.Time
	codes    []string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)

	return &fixture{
		repo:     &fakeRepo{},
		tx:       &fakeTx{},
		away:     &fakeAwayDays{},
		verifier: &fakeVerifier{verified: map[string]bool{customerPhone: true}},
		notifier: &fakeNotifier{},
		metrics:  &fakeMetrics{},
		loc:      loc,
		now:      time.Date(2026, 10, 14, 10, 0, 0, 0, loc),
	}
}

func (f *fixture) useCase(t *testing.T) *UseCase {
	t.Helper()
	catalog, err := domain.NewCatalog(
		[]domain.Service{
			{Name: "Haircut", PriceCents: 4000, DurationMinutes: 30},
			{Name: "Shampoo", PriceCents: 500, DurationMinutes: 10},
		},
		[]domain.Barber{{Name: "Alex", SurchargeCents: 500}, {Name: "Moe"}},
	)
	require.NoError(t, err)

	hours, err := scheduling.ParseBusinessHours("11:00", "20:00")
	require.NoError(t, err)
	guard, err := scheduling.NewGuard(scheduling.Config{
		Hours:              hours,
		GranularityMinutes: 15,
		BufferMinutes:      5,
		Location:           f.loc,
	})
	require.NoError(t, err)

	rules := domain.ShopRules{
		Location:           f.loc,
		ClosedWeekdays:     []time.Weekday{time.Tuesday},
		BookingHorizonDays: 60,
	}

	uc := NewUseCase(f.repo, f.away, catalog, guard, f.verifier, f.notifier, f.metrics, f.tx, rules,
		Options{RequirePhoneVerification: true, ConfirmationCodeLength: 8}, logger.Nop()).
		WithTimeProvider(fixedTime{now: f.now})

	n := 0
	uc.newCode = func() (string, error) {
		n++
		code := fmt.Sprintf("CODE%04d", n)
		f.codes = append(f.codes, code)
		return code, nil
	}
	return uc
}

func (f *fixture) at(day, hour, minute int) time.Time {
	return time.Date(2026, 10, day, hour, minute, 0, 0, f.loc)
}

func (f *fixture) existing(id int64, barber string, start time.Time, minutes int) *domain.Appointment {
	return &domain.Appointment{
		ID:              id,
		Barber:          barber,
		StartTime:       start,
		DurationMinutes: minutes,
		Status:          domain.StatusConfirmed,
	}
}

func (f *fixture) request(barber string, start time.Time, services ...string) *Request {
	return &Request{
		Barber:        barber,
		CustomerName:  "Sam Carter",
		CustomerPhone: customerPhone,
		Services:      services,
		StartTime:     start,
	}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(t)

	resp, err := uc.Execute(context.Background(), f.request("alex", f.at(15, 13, 0), "haircut", "Shampoo"))
	require.NoError(t, err)

	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, "CODE0001", resp.ConfirmationCode)
	assert.Equal(t, "Alex", resp.Barber)
	assert.Equal(t, []string{"Haircut", "Shampoo"}, resp.Services)
	assert.Equal(t, 40, resp.DurationMinutes)
	assert.Equal(t, int64(5000), resp.TotalPriceCents)
	assert.Equal(t, f.at(15, 13, 40), resp.EndTime)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "online", resp.Source)

	// Предварительная проверка вне транзакции, повторная внутри
	assert.Equal(t, []bool{false, true}, f.repo.listInTx)
	assert.Equal(t, []string{"Alex"}, f.repo.locked)

	require.Len(t, f.notifier.kinds, 1)
	assert.Equal(t, notifications.KindBooked, f.notifier.kinds[0])
	assert.Equal(t, "CODE0001", f.notifier.appts[0].ConfirmationCode)

	assert.Equal(t, []string{"book:" + metrics.OutcomeAccepted}, f.metrics.outcomes)
}

func TestExecute_SlotUnavailableAtPreCheck(t *testing.T) {
	f := newFixture(t)
	f.repo.snapshots = [][]*domain.Appointment{{f.existing(7, "Alex", f.at(15, 13, 0), 30)}}
	uc := f.useCase(t)

	// 13:30 попадает в буфер 5 минут после записи 13:00-13:30
	_, err := uc.Execute(context.Background(), f.request("Alex", f.at(15, 13, 30), "Haircut"))

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.NotErrorIs(t, err, ErrRaceLost)
	assert.Contains(t, err.Error(), "id=7")
	assert.Equal(t, 0, f.tx.calls)
	assert.Empty(t, f.notifier.kinds)
	assert.Equal(t, []string{"book:" + metrics.OutcomeSlotUnavailable}, f.metrics.outcomes)
}

func TestExecute_BufferBoundaryAccepted(t *testing.T) {
	f := newFixture(t)
	f.repo.snapshots = [][]*domain.Appointment{{f.existing(7, "Alex", f.at(15, 13, 0), 30)}}

	resp, err := f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(15, 13, 35), "Haircut"))
	require.NoError(t, err)
	assert.Equal(t, f.at(15, 13, 35), resp.StartTime)
}

func TestExecute_RaceLostWhenCommitSeesNewConflict(t *testing.T) {
	f := newFixture(t)
	f.repo.snapshots = [][]*domain.Appointment{
		{},
		{f.existing(42, "Alex", f.at(15, 13, 0), 30)},
	}
	uc := f.useCase(t)

	_, err := uc.Execute(context.Background(), f.request("Alex", f.at(15, 13, 0), "Haircut"))

	assert.ErrorIs(t, err, ErrRaceLost)
	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Contains(t, err.Error(), "id=42")
	assert.Equal(t, 0, f.repo.createCalls)
	assert.Empty(t, f.notifier.kinds)
	assert.Equal(t, []string{"book:" + metrics.OutcomeRaceLost}, f.metrics.outcomes)
}

func TestExecute_RaceLostOnSerializationFailure(t *testing.T) {
	f := newFixture(t)
	f.tx.commitErr = fmt.Errorf("%w: %w", txmanager.ErrSerialization, &pq.Error{Code: "40001"})
	uc := f.useCase(t)

	_, err := uc.Execute(context.Background(), f.request("Alex", f.at(15, 13, 0), "Haircut"))

	assert.ErrorIs(t, err, ErrRaceLost)
	assert.Empty(t, f.notifier.kinds)
	assert.Equal(t, []string{"book:" + metrics.OutcomeRaceLost}, f.metrics.outcomes)
}

func TestExecute_RetriesOnDuplicateCode(t *testing.T) {
	f := newFixture(t)
	f.repo.createErrs = []error{appointmentRepo.ErrDuplicateCode, nil}
	uc := f.useCase(t)

	resp, err := uc.Execute(context.Background(), f.request("Moe", f.at(15, 11, 0), "Haircut"))
	require.NoError(t, err)

	assert.Equal(t, "CODE0002", resp.ConfirmationCode)
	assert.Equal(t, []string{"CODE0001", "CODE0002"}, f.codes)
	assert.Equal(t, 2, f.tx.calls)
	require.Len(t, f.repo.created, 1)
}

func TestExecute_GivesUpAfterRepeatedCodeCollisions(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < maxCodeAttempts; i++ {
		f.repo.createErrs = append(f.repo.createErrs, appointmentRepo.ErrDuplicateCode)
	}

	_, err := f.useCase(t).Execute(context.Background(), f.request("Moe", f.at(15, 11, 0), "Haircut"))

	assert.ErrorIs(t, err, appointmentRepo.ErrDuplicateCode)
	assert.Equal(t, maxCodeAttempts, f.tx.calls)
}

func TestExecute_StorageFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(f *fixture)
	}{
		{name: "pre-check read", setup: func(f *fixture) { f.repo.listErr = errors.New("connection refused") }},
		{name: "lock", setup: func(f *fixture) { f.repo.lockErr = errors.New("connection reset") }},
		{name: "insert", setup: func(f *fixture) { f.repo.createErrs = []error{errors.New("disk full")} }},
		{name: "commit", setup: func(f *fixture) { f.tx.commitErr = txmanager.ErrCommitTx }},
		{name: "away day read", setup: func(f *fixture) { f.away.err = errors.New("timeout") }},
		{name: "verification read", setup: func(f *fixture) { f.verifier.err = errors.New("redis down") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			resp, err := f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(15, 13, 0), "Haircut"))

			assert.ErrorIs(t, err, ErrStorage)
			assert.Nil(t, resp)
			assert.Empty(t, f.notifier.kinds)
			assert.Equal(t, []string{"book:" + metrics.OutcomeStorageError}, f.metrics.outcomes)
		})
	}
}

func TestExecute_PhoneVerification(t *testing.T) {
	f := newFixture(t)
	uc := f.useCase(t)

	req := f.request("Alex", f.at(15, 13, 0), "Haircut")
	req.CustomerPhone = "+17145559999"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrPhoneNotVerified)

	// Walk-in оформляет сотрудник: телефон не обязателен и не проверяется
	walkIn := f.request("Alex", f.at(15, 13, 0), "Haircut")
	walkIn.CustomerPhone = ""
	walkIn.Source = domain.SourceWalkIn
	resp, err := uc.Execute(context.Background(), walkIn)
	require.NoError(t, err)
	assert.Equal(t, "walk_in", resp.Source)
	assert.Equal(t, "walk_in:"+metrics.OutcomeAccepted, f.metrics.outcomes[len(f.metrics.outcomes)-1])
}

func TestExecute_CalendarRules(t *testing.T) {
	f := newFixture(t)
	f.away.away = true
	_, err := f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(15, 13, 0), "Haircut"))
	assert.ErrorIs(t, err, ErrBarberAway)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	f = newFixture(t)
	_, err = f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(20, 13, 0), "Haircut"))
	assert.ErrorIs(t, err, ErrShopClosed)

	f = newFixture(t)
	_, err = f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(15, 19, 45), "Haircut"))
	assert.ErrorIs(t, err, ErrOutsideBusinessHours)
	assert.ErrorIs(t, err, ErrInvalidInput)

	f = newFixture(t)
	f.now = f.at(14, 14, 0)
	_, err = f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(14, 13, 0), "Haircut"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	f = newFixture(t)
	_, err = f.useCase(t).Execute(context.Background(), f.request("Alex", f.at(13, 13, 0), "Haircut"))
	assert.ErrorIs(t, err, domain.ErrDateInPast)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)
	start := f.at(15, 13, 0)
	longNotes := strings.Repeat("x", domain.MaxNotesLength+1)

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{name: "no barber", mutate: func(r *Request) { r.Barber = "" }, wantErr: ErrInvalidInput},
		{name: "blank name", mutate: func(r *Request) { r.CustomerName = "  " }, wantErr: ErrInvalidInput},
		{name: "no phone", mutate: func(r *Request) { r.CustomerPhone = "" }, wantErr: ErrInvalidInput},
		{name: "bad phone", mutate: func(r *Request) { r.CustomerPhone = "714-555-0123" }, wantErr: ErrInvalidInput},
		{name: "no services", mutate: func(r *Request) { r.Services = nil }, wantErr: ErrInvalidInput},
		{name: "zero start", mutate: func(r *Request) { r.StartTime = time.Time{} }, wantErr: ErrInvalidInput},
		{name: "long notes", mutate: func(r *Request) { r.Notes = &longNotes }, wantErr: ErrInvalidInput},
		{name: "unknown source", mutate: func(r *Request) { r.Source = "phone" }, wantErr: ErrInvalidInput},
		{name: "unknown barber", mutate: func(r *Request) { r.Barber = "Nobody" }, wantErr: ErrUnknownBarber},
		{name: "unknown service", mutate: func(r *Request) { r.Services = []string{"Manicure"} }, wantErr: ErrUnknownService},
		{name: "duplicate service", mutate: func(r *Request) { r.Services = []string{"Haircut", "HAIRCUT"} }, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request("Alex", start, "Haircut")
			tt.mutate(req)

			_, err := f.useCase(t).Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, []string{"book:" + metrics.OutcomeInvalid}, f.metrics.outcomes)
		})
	}
}

func TestRandomCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		code, err := randomCode(8)
		require.NoError(t, err)
		require.Len(t, code, 8)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 95)
}
