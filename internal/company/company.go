package company

import (
	"carrental/internal/control"
	"carrental/internal/events"

	"github.com/sirupsen/logrus"
)

// Company aggregates the collections of one rental company.
type Company struct {
	Name       string
	Customers  *Customers
	Categories *Categories
	Cars       *Cars
	Bookings   *Bookings
	Rentals    *Rentals

	seq *control.Sequence
	cal *control.Calendar
	log logrus.FieldLogger
}

type Option func(*Company)

// WithLogger routes the collection change log lines to log.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Company) {
		c.log = log
	}
}

func New(name string, seq *control.Sequence, cal *control.Calendar, opts ...Option) *Company {
	if seq == nil {
		seq = control.NewSequence()
	}
	if cal == nil {
		cal = control.NewCalendar()
	}

	c := &Company{
		Name: name,
		seq:  seq,
		cal:  cal,
		log:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Customers = &Customers{company: c}
	c.Categories = &Categories{company: c}
	c.Cars = &Cars{company: c}
	c.Bookings = &Bookings{company: c}
	c.Rentals = &Rentals{company: c}
	return c
}

func (c *Company) Sequence() *control.Sequence {
	return c.seq
}

func (c *Company) Calendar() *control.Calendar {
	return c.cal
}

// Subjects returns the observable collections keyed by source name.
func (c *Company) Subjects() map[string]*events.Subject {
	return map[string]*events.Subject{
		SourceCustomers: &c.Customers.Subject,
		SourceCars:      &c.Cars.Subject,
		SourceBookings:  &c.Bookings.Subject,
		SourceRentals:   &c.Rentals.Subject,
		SourcePoints:    &c.Customers.Points,
	}
}

func (c *Company) logf(format string, args ...interface{}) {
	c.log.Infof(format, args...)
}

const (
	SourceCustomers = "customers"
	SourceCars      = "cars"
	SourceBookings  = "bookings"
	SourceRentals   = "rentals"
	SourcePoints    = "points"
)
