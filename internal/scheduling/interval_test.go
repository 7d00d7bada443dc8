package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestInterval_Overlaps(t *testing.T) {
	base := NewInterval(at(12, 0), 30)

	assert.True(t, base.Overlaps(NewInterval(at(12, 15), 30)))
	assert.True(t, base.Overlaps(NewInterval(at(11, 45), 30)))
	assert.True(t, base.Overlaps(NewInterval(at(12, 10), 5)))
	assert.False(t, base.Overlaps(NewInterval(at(12, 30), 30)), "touching end")
	assert.False(t, base.Overlaps(NewInterval(at(11, 30), 30)), "touching start")
}

func TestConflicts_WidensExistingOnly(t *testing.T) {
	existing := NewInterval(at(12, 0), 30)

	assert.True(t, Conflicts(existing, NewInterval(at(12, 30), 30), 5*time.Minute))
	assert.True(t, Conflicts(existing, NewInterval(at(11, 30), 26), 5*time.Minute))
	assert.False(t, Conflicts(existing, NewInterval(at(11, 30), 25), 5*time.Minute))
	assert.False(t, Conflicts(existing, NewInterval(at(12, 35), 30), 5*time.Minute))
	assert.False(t, Conflicts(existing, NewInterval(at(12, 30), 30), 0))
}

func TestNewInterval_ClampsToOneDay(t *testing.T) {
	start := at(11, 0)

	iv := NewInterval(start, 1<<45)
	assert.Equal(t, start.Add(24*time.Hour), iv.End)
	assert.True(t, iv.End.After(iv.Start))

	assert.Equal(t, start.Add(30*time.Minute), NewInterval(start, 30).End)
}
