package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceNext(t *testing.T) {
	seq := NewSequence()
	seq.Set(1)
	assert.Equal(t, 2, seq.Next())
	assert.Equal(t, 3, seq.Next())
	assert.Equal(t, 3, seq.Current())
}

func TestSequenceSet(t *testing.T) {
	seq := NewSequence()
	seq.Set(1)
	assert.Equal(t, 1, seq.Current())
}

func TestCalendarSetToday(t *testing.T) {
	cal := NewCalendar()
	now := time.Now()
	cal.SetToday(now)
	require.Equal(t, Day(now), cal.Today())

	cal.SetToday(time.Date(2024, 3, 7, 17, 45, 0, 0, time.FixedZone("CET", 3600)))
	assert.Equal(t, Date(2024, 3, 7), cal.Today())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween(Date(2024, 3, 7), Date(2024, 3, 14)))
	assert.Equal(t, 0, DaysBetween(Date(2024, 3, 7), Date(2024, 3, 7)))
	assert.Equal(t, 29, DaysBetween(Date(2024, 2, 1), Date(2024, 3, 1)))
}
