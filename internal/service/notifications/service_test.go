package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
	"github.com/m04kA/KingsBarber-BookingService/internal/integrations/smsgateway"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

type sentSMS struct {
	to   string
	body string
}

type fakeSMS struct {
	sent    []sentSMS
	fail    map[string]error
	ctxErrs []error
}

func (f *fakeSMS) Send(ctx context.Context, to, body string) (*smsgateway.SendResult, error) {
	f.ctxErrs = append(f.ctxErrs, ctx.Err())
	if err := f.fail[to]; err != nil {
		return nil, err
	}
	f.sent = append(f.sent, sentSMS{to: to, body: body})
	return &smsgateway.SendResult{ID: "1"}, nil
}

type fakePublisher struct {
	types []string
	err   error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, _ *domain.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.types = append(f.types, eventType)
	return nil
}

type fakeMetrics struct {
	failures map[string]int
}

func (f *fakeMetrics) RecordNotificationFailure(channel string) {
	if f.failures == nil {
		f.failures = map[string]int{}
	}
	f.failures[channel]++
}

func testCatalog(t *testing.T) *domain.Catalog {
	t.Helper()
	c, err := domain.NewCatalog(
		[]domain.Service{{Name: "Haircut", PriceCents: 4000, DurationMinutes: 30}},
		[]domain.Barber{{Name: "Alex", SurchargeCents: 500, NotifyPhone: "+17145550100"}, {Name: "Moe"}},
	)
	require.NoError(t, err)
	return c
}

func testAppointment(barber string) *domain.Appointment {
	return &domain.Appointment{
		ID:               1,
		ConfirmationCode: "ABCD2345",
		Barber:           barber,
		CustomerName:     "Sam Carter",
		CustomerPhone:    "+17145550123",
		Services:         []string{"Haircut"},
		StartTime:        time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC),
		DurationMinutes:  30,
	}
}

func newTestService(t *testing.T, sms *fakeSMS, pub EventPublisher, m *fakeMetrics) *Service {
	loc, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	return NewService(sms, pub, testCatalog(t), m, loc, "Kings Barber Shop", logger.Nop())
}

func TestNotify_ResolvesRecipientsPerBarber(t *testing.T) {
	sms := &fakeSMS{}
	pub := &fakePublisher{}
	svc := newTestService(t, sms, pub, &fakeMetrics{})

	svc.Notify(context.Background(), KindBooked, testAppointment("Alex"))

	require.Len(t, sms.sent, 2)
	assert.Equal(t, "+17145550123", sms.sent[0].to)
	assert.Contains(t, sms.sent[0].body, "Thu Oct 15 at 1:00 PM")
	assert.Contains(t, sms.sent[0].body, "ABCD2345")
	assert.Equal(t, "+17145550100", sms.sent[1].to)
	assert.Contains(t, sms.sent[1].body, "New booking: Sam Carter")
	assert.Equal(t, []string{"appointment.booked"}, pub.types)

	// У Moe нет телефона для уведомлений
	sms.sent = nil
	svc.Notify(context.Background(), KindCancelled, testAppointment("Moe"))
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0].body, "cancelled")
}

func TestNotify_FailuresAreSwallowedAndCounted(t *testing.T) {
	sms := &fakeSMS{fail: map[string]error{"+17145550123": errors.New("provider down")}}
	pub := &fakePublisher{err: errors.New("broker down")}
	m := &fakeMetrics{}
	svc := newTestService(t, sms, pub, m)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), KindRescheduled, testAppointment("Alex"))
	})

	assert.Equal(t, 1, m.failures[ChannelCustomerSMS])
	assert.Equal(t, 1, m.failures[ChannelEvents])
	require.Len(t, sms.sent, 1, "barber still notified")
}

func TestNotify_SurvivesCancelledRequestContext(t *testing.T) {
	sms := &fakeSMS{}
	svc := newTestService(t, sms, nil, &fakeMetrics{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Notify(ctx, KindBooked, testAppointment("Alex"))

	assert.Len(t, sms.sent, 2)
	assert.Equal(t, []error{nil, nil}, sms.ctxErrs)
}

func TestNotify_WithoutPublisher(t *testing.T) {
	sms := &fakeSMS{}
	m := &fakeMetrics{}
	svc := newTestService(t, sms, nil, m)

	assert.NotPanics(t, func() {
		svc.Notify(context.Background(), KindBooked, testAppointment("Alex"))
	})

	assert.Len(t, sms.sent, 2)
	assert.Empty(t, m.failures)
}

func TestSendVerificationCode(t *testing.T) {
	sms := &fakeSMS{}
	svc := newTestService(t, sms, nil, &fakeMetrics{})

	require.NoError(t, svc.SendVerificationCode(context.Background(), "+17145550123", "123456", 5*time.Minute))
	require.Len(t, sms.sent, 1)
	assert.Contains(t, sms.sent[0].body, "123456")
	assert.Contains(t, sms.sent[0].body, "5 minutes")
}
