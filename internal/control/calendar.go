package control

import (
	"time"
)

// Calendar holds the simulated current date used for pickup validation.
type Calendar struct {
	today time.Time
}

func NewCalendar() *Calendar {
	return &Calendar{today: Day(time.Now())}
}

func NewCalendarAt(today time.Time) *Calendar {
	return &Calendar{today: Day(today)}
}

func (c *Calendar) Today() time.Time {
	return c.today
}

// SetToday simulates days passing.
func (c *Calendar) SetToday(today time.Time) {
	c.today = Day(today)
}

// Day truncates t to midnight UTC of its calendar date.
func Day(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Date builds a UTC calendar date.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Day(end).Sub(Day(start)).Hours() / 24)
}
