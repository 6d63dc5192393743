package events

import "reflect"

// Event describes a change in one of the company collections.
type Event struct {
	Source string `json:"source"`
	Count  int    `json:"count"`
}

type Observer interface {
	Update(event Event)
}

// ObserverFunc adapts a plain function to Observer. Function values cannot be
// compared, so Detach never matches an ObserverFunc; use DetachAll or a
// pointer to a named type instead.
type ObserverFunc func(event Event)

func (f ObserverFunc) Update(event Event) {
	f(event)
}

// Subject fans an event out to its observers in attach order.
type Subject struct {
	observers []Observer
}

func (s *Subject) Attach(observer Observer) {
	s.observers = append(s.observers, observer)
}

// Detach removes the first observer equal to observer. Observers of an
// uncomparable dynamic type are left attached.
func (s *Subject) Detach(observer Observer) {
	if t := reflect.TypeOf(observer); t == nil || !t.Comparable() {
		return
	}
	for i, o := range s.observers {
		if o == observer {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// DetachAll removes every observer.
func (s *Subject) DetachAll() {
	s.observers = nil
}

func (s *Subject) Notify(event Event) {
	for _, o := range s.observers {
		o.Update(event)
	}
}

func (s *Subject) Observers() int {
	return len(s.observers)
}
