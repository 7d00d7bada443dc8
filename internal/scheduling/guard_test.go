package scheduling

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/internal/domain"
)

func newTestGuard(t *testing.T, cfg Config) *Guard {
	t.Helper()
	g, err := NewGuard(cfg)
	require.NoError(t, err)
	return g
}

func TestTryBook_BufferCorrectness(t *testing.T) {
	cfg := testConfig(5)
	cfg.Hours = BusinessHours{OpenMinutes: 9 * 60, CloseMinutes: 20 * 60}
	g := newTestGuard(t, cfg)

	existing := []*domain.Appointment{appt(1, "Alex", at(10, 0), 30)}

	// Зазор 0 < B
	d, err := g.TryBook("Alex", at(10, 30), 30, existing, nil)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonConflict, d.Reason)
	assert.Equal(t, int64(1), d.ConflictingID)

	// Зазор 5 >= B
	d, err = g.TryBook("Alex", at(10, 35), 30, existing, nil)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestTryBook_ConflictSymmetry(t *testing.T) {
	g := newTestGuard(t, testConfig(5))
	existing := []*domain.Appointment{appt(1, "Alex", at(14, 0), 60)}

	tests := []struct {
		name     string
		start    time.Time
		minutes  int
		accepted bool
	}{
		{name: "fully contains", start: at(13, 30), minutes: 120, accepted: false},
		{name: "fully contained", start: at(14, 15), minutes: 30, accepted: false},
		{name: "partial overlap at start", start: at(13, 45), minutes: 30, accepted: false},
		{name: "partial overlap at end", start: at(14, 45), minutes: 30, accepted: false},
		{name: "identical", start: at(14, 0), minutes: 60, accepted: false},
		{name: "touching before within buffer", start: at(13, 30), minutes: 30, accepted: false},
		{name: "touching after within buffer", start: at(15, 0), minutes: 30, accepted: false},
		{name: "strictly before beyond buffer", start: at(13, 0), minutes: 55, accepted: true},
		{name: "strictly after beyond buffer", start: at(15, 5), minutes: 30, accepted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := g.TryBook("Alex", tt.start, tt.minutes, existing, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, d.Accepted)
			if !tt.accepted {
				assert.Equal(t, int64(1), d.ConflictingID)
			}
		})
	}
}

func TestTryBook_SelfExclusionOnReschedule(t *testing.T) {
	g := newTestGuard(t, testConfig(5))
	own := appt(7, "Alex", at(14, 0), 60)
	other := appt(8, "Alex", at(16, 0), 30)
	existing := []*domain.Appointment{own, other}
	ownID := own.ID

	d, err := g.TryBook("Alex", at(14, 0), 60, existing, &ownID)
	require.NoError(t, err)
	assert.True(t, d.Accepted, "same slot")

	d, err = g.TryBook("Alex", at(14, 30), 60, existing, &ownID)
	require.NoError(t, err)
	assert.True(t, d.Accepted, "overlapping own slot")

	d, err = g.TryBook("Alex", at(15, 15), 60, existing, &ownID)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, int64(8), d.ConflictingID)

	d, err = g.TryBook("Alex", at(14, 30), 60, existing, nil)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, int64(7), d.ConflictingID)
}

func TestTryBook_NamesEarliestConflict(t *testing.T) {
	g := newTestGuard(t, testConfig(5))
	existing := []*domain.Appointment{
		appt(3, "Alex", at(15, 0), 30),
		appt(2, "Alex", at(14, 0), 30),
	}

	d, err := g.TryBook("Alex", at(13, 30), 120, existing, nil)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, int64(2), d.ConflictingID)
}

func TestTryBook_BusinessHours(t *testing.T) {
	g := newTestGuard(t, testConfig(5))

	tests := []struct {
		name     string
		start    time.Time
		minutes  int
		accepted bool
	}{
		{name: "starts before open", start: at(10, 45), minutes: 30, accepted: false},
		{name: "ends after close", start: at(19, 45), minutes: 30, accepted: false},
		{name: "first minute", start: at(11, 0), minutes: 30, accepted: true},
		{name: "ends exactly at close", start: at(19, 30), minutes: 30, accepted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := g.TryBook("Alex", tt.start, tt.minutes, nil, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.accepted, d.Accepted)
			if !tt.accepted {
				assert.Equal(t, ReasonOutsideHours, d.Reason)
			}
		})
	}
}

func TestTryBook_PerBarberIndependence(t *testing.T) {
	g := newTestGuard(t, testConfig(5))
	existing := []*domain.Appointment{appt(1, "Moe", at(14, 0), 60)}

	d, err := g.TryBook("Alex", at(14, 0), 60, existing, nil)
	require.NoError(t, err)
	assert.True(t, d.Accepted)
}

func TestTryBook_InvalidInput(t *testing.T) {
	g := newTestGuard(t, testConfig(5))

	_, err := g.TryBook("Alex", at(14, 0), 0, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = g.TryBook("Alex", time.Time{}, 30, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

// Любая последовательность принятых бронирований оставляет попарно непересекающиеся интервалы
func TestTryBook_NoOverlapInvariant(t *testing.T) {
	const buffer = 5
	g := newTestGuard(t, testConfig(buffer))
	rng := rand.New(rand.NewSource(42))
	durations := []int{5, 10, 20, 25, 30, 45, 60}

	for _, barber := range []string{"Alex", "Yazan"} {
		var ledger []*domain.Appointment
		for i := 0; i < 500; i++ {
			start := at(10, 0).Add(time.Duration(rng.Intn(11*60)) * time.Minute)
			minutes := durations[rng.Intn(len(durations))]

			d, err := g.TryBook(barber, start, minutes, ledger, nil)
			require.NoError(t, err)
			if d.Accepted {
				ledger = append(ledger, appt(int64(len(ledger)+1), barber, start, minutes))
			}
		}

		require.NotEmpty(t, ledger)
		for i := range ledger {
			for j := i + 1; j < len(ledger); j++ {
				a := NewInterval(ledger[i].StartTime, ledger[i].DurationMinutes)
				b := NewInterval(ledger[j].StartTime, ledger[j].DurationMinutes)
				assert.False(t, Conflicts(a, b, buffer*time.Minute),
					"%s: %s-%s conflicts with %s-%s", barber, a.Start, a.End, b.Start, b.End)
			}
		}
	}
}

func TestSchedulerAndGuardAgree(t *testing.T) {
	cfg := testConfig(5)
	s := newTestScheduler(t, 5)
	g := newTestGuard(t, cfg)
	existing := []*domain.Appointment{
		appt(1, "Alex", at(12, 0), 45),
		appt(2, "Alex", at(17, 10), 20),
	}

	slots, err := s.GenerateSlots("Alex", testDate, 30, existing, false)
	require.NoError(t, err)
	offered := make(map[time.Time]bool, len(slots))
	for _, slot := range slots {
		offered[slot.Start] = true
	}

	for start := at(11, 0); start.Before(at(20, 0)); start = start.Add(15 * time.Minute) {
		d, err := g.TryBook("Alex", start, 30, existing, nil)
		require.NoError(t, err)
		assert.Equal(t, offered[start], d.Accepted, "start %s", start.Format(domain.TimeFormat))
	}
}

func TestTryBook_RejectsDurationLongerThanBusinessDay(t *testing.T) {
	g := newTestGuard(t, testConfig(5))

	tests := []struct {
		name     string
		duration int
	}{
		{name: "one minute over", duration: 9*60 + 1},
		{name: "overflowing duration", duration: 1 << 45},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := g.TryBook("Alex", at(12, 0), tt.duration, nil, nil)
			assert.ErrorIs(t, err, ErrInvalidDuration)
			assert.False(t, d.Accepted)
		})
	}
}

func TestTryBook_OversizedLedgerRowConflicts(t *testing.T) {
	g := newTestGuard(t, testConfig(5))
	existing := []*domain.Appointment{appt(7, "Alex", at(11, 0), 1<<45)}

	d, err := g.TryBook("Alex", at(18, 0), 30, existing, nil)
	require.NoError(t, err)
	assert.False(t, d.Accepted)
	assert.Equal(t, ReasonConflict, d.Reason)
	assert.Equal(t, int64(7), d.ConflictingID)
}
