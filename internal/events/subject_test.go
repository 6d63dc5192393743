package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	events []Event
}

func (r *recorder) Update(event Event) {
	r.events = append(r.events, event)
}

func TestSubjectNotify(t *testing.T) {
	var s Subject
	first, second := &recorder{}, &recorder{}
	s.Attach(first)
	s.Attach(second)

	s.Notify(Event{Source: "cars", Count: 2})

	assert.Equal(t, []Event{{Source: "cars", Count: 2}}, first.events)
	assert.Equal(t, []Event{{Source: "cars", Count: 2}}, second.events)
}

func TestSubjectDetach(t *testing.T) {
	var s Subject
	kept, dropped := &recorder{}, &recorder{}
	s.Attach(kept)
	s.Attach(dropped)
	s.Detach(dropped)

	s.Notify(Event{Source: "bookings", Count: 1})

	assert.Len(t, kept.events, 1)
	assert.Empty(t, dropped.events)
	assert.Equal(t, 1, s.Observers())
}

func TestSubjectDetachUncomparable(t *testing.T) {
	var s Subject
	calls := 0
	fn := ObserverFunc(func(Event) { calls++ })
	kept := &recorder{}
	s.Attach(fn)
	s.Attach(kept)

	assert.NotPanics(t, func() { s.Detach(ObserverFunc(func(Event) {})) })
	assert.NotPanics(t, func() { s.Detach(fn) })
	assert.NotPanics(t, func() { s.Detach(nil) })
	assert.Equal(t, 2, s.Observers())

	s.Detach(kept)
	s.Notify(Event{Source: "cars", Count: 1})
	assert.Equal(t, 1, calls)
	assert.Empty(t, kept.events)
	assert.Equal(t, 1, s.Observers())
}

func TestObserverFunc(t *testing.T) {
	var s Subject
	calls := 0
	s.Attach(ObserverFunc(func(Event) { calls++ }))
	s.Notify(Event{})
	s.Notify(Event{})
	assert.Equal(t, 2, calls)

	s.DetachAll()
	s.Notify(Event{})
	assert.Equal(t, 2, calls)
}
