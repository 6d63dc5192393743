// Package snapshot persists a whole company as one flat document.
package snapshot

import (
	"errors"
	"fmt"
	"time"

	"carrental/internal/company"
	"carrental/internal/control"
	"carrental/internal/models"
)

// Version is bumped whenever the record layout changes incompatibly.
const Version = 1

// ErrSchemaMismatch marks a snapshot that cannot be turned back into a company.
var ErrSchemaMismatch = errors.New("snapshot schema mismatch")

type Snapshot struct {
	Version     int              `bson:"version"`
	CompanyName string           `bson:"company_name"`
	CurrentID   int              `bson:"current_id"`
	Today       time.Time        `bson:"today"`
	Customers   []CustomerRecord `bson:"customers"`
	Categories  []CategoryRecord `bson:"categories"`
	Cars        []CarRecord      `bson:"cars"`
	Bookings    []BookingRecord  `bson:"bookings"`
	Rentals     []RentalRecord   `bson:"rentals"`
}

type CustomerRecord struct {
	ID     int    `bson:"id"`
	Name   string `bson:"name"`
	Points int    `bson:"points"`
	Status string `bson:"status"`
}

type CategoryRecord struct {
	ID   int    `bson:"id"`
	Name string `bson:"name"`
}

type CarRecord struct {
	ID         int    `bson:"id"`
	Model      string `bson:"model"`
	Color      string `bson:"color"`
	CategoryID int    `bson:"category_id"`
}

// BookingRecord references either a car or a category; the other id is zero.
type BookingRecord struct {
	ID          int       `bson:"id"`
	CustomerID  int       `bson:"customer_id"`
	CarID       int       `bson:"car_id,omitempty"`
	CategoryID  int       `bson:"category_id,omitempty"`
	PeriodStart time.Time `bson:"period_start"`
	PeriodEnd   time.Time `bson:"period_end"`
}

type RentalRecord struct {
	ID        int `bson:"id"`
	BookingID int `bson:"booking_id"`
	CarID     int `bson:"car_id"`
}

// Capture flattens the company, its id counter and its calendar.
func Capture(c *company.Company) *Snapshot {
	s := &Snapshot{
		Version:     Version,
		CompanyName: c.Name,
		CurrentID:   c.Sequence().Current(),
		Today:       c.Calendar().Today(),
	}

	for _, customer := range c.Customers.Get() {
		s.Customers = append(s.Customers, CustomerRecord{
			ID:     customer.ID,
			Name:   customer.Name,
			Points: customer.Points,
			Status: string(customer.Status),
		})
	}
	for _, category := range c.Categories.Get() {
		s.Categories = append(s.Categories, CategoryRecord{ID: category.ID, Name: category.Name})
	}
	for _, car := range c.Cars.Get() {
		s.Cars = append(s.Cars, CarRecord{
			ID:         car.ID,
			Model:      car.Model,
			Color:      car.Color,
			CategoryID: car.Category.ID,
		})
	}
	for _, booking := range c.Bookings.Get() {
		record := BookingRecord{
			ID:          booking.ID,
			CustomerID:  booking.Customer.ID,
			PeriodStart: booking.PeriodStart,
			PeriodEnd:   booking.PeriodEnd,
		}
		if booking.Car != nil {
			record.CarID = booking.Car.ID
		} else if booking.Category != nil {
			record.CategoryID = booking.Category.ID
		}
		s.Bookings = append(s.Bookings, record)
	}
	for _, rental := range c.Rentals.Get() {
		s.Rentals = append(s.Rentals, RentalRecord{
			ID:        rental.ID,
			BookingID: rental.Booking.ID,
			CarID:     rental.Car.ID,
		})
	}
	return s
}

// Restore rebuilds the object graph. The returned company continues the id
// sequence where the snapshot left off. Every failure wraps ErrSchemaMismatch.
func Restore(s *Snapshot, opts ...company.Option) (*company.Company, error) {
	if s.Version != Version {
		return nil, fmt.Errorf("%w: version %d, want %d", ErrSchemaMismatch, s.Version, Version)
	}

	seq := control.NewSequence()
	cal := control.NewCalendarAt(s.Today)
	if s.Today.IsZero() {
		cal = control.NewCalendar()
	}
	c := company.New(s.CompanyName, seq, cal, opts...)

	maxID := 0
	track := func(id int) error {
		if id <= 0 {
			return fmt.Errorf("%w: invalid id %d", ErrSchemaMismatch, id)
		}
		if id > maxID {
			maxID = id
		}
		return nil
	}
	wrap := func(err error) error {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}

	for _, r := range s.Customers {
		if err := track(r.ID); err != nil {
			return nil, err
		}
		customer := &models.Customer{ID: r.ID, Name: r.Name, Points: r.Points, Status: models.CustomerStatus(r.Status)}
		if err := c.Customers.Restore(customer); err != nil {
			return nil, wrap(err)
		}
	}
	for _, r := range s.Categories {
		if err := track(r.ID); err != nil {
			return nil, err
		}
		if err := c.Categories.Restore(&models.Category{ID: r.ID, Name: r.Name}); err != nil {
			return nil, wrap(err)
		}
	}
	for _, r := range s.Cars {
		if err := track(r.ID); err != nil {
			return nil, err
		}
		if _, err := c.Cars.Restore(r.ID, r.Model, r.Color, r.CategoryID); err != nil {
			return nil, wrap(err)
		}
	}
	for _, r := range s.Bookings {
		if err := track(r.ID); err != nil {
			return nil, err
		}
		_, err := c.Bookings.Restore(company.RestoredBooking{
			ID:          r.ID,
			CustomerID:  r.CustomerID,
			CarID:       r.CarID,
			CategoryID:  r.CategoryID,
			PeriodStart: r.PeriodStart,
			PeriodEnd:   r.PeriodEnd,
		})
		if err != nil {
			return nil, wrap(err)
		}
	}
	for _, r := range s.Rentals {
		if err := track(r.ID); err != nil {
			return nil, err
		}
		if _, err := c.Rentals.Restore(r.ID, r.BookingID, r.CarID); err != nil {
			return nil, wrap(err)
		}
	}

	if s.CurrentID < maxID {
		return nil, fmt.Errorf("%w: id counter %d behind highest id %d", ErrSchemaMismatch, s.CurrentID, maxID)
	}
	seq.Set(s.CurrentID)
	return c, nil
}
