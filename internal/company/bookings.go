package company

import (
	"time"

	"carrental/internal/control"
	"carrental/internal/events"
	"carrental/internal/models"
)

// Bookings manages reservations of a specific car or of a car category.
type Bookings struct {
	events.Subject

	bookings []*models.Booking
	company  *Company
}

func (bs *Bookings) Get() []*models.Booking {
	out := make([]*models.Booking, len(bs.bookings))
	copy(out, bs.bookings)
	return out
}

// Add books a specific car for the period.
func (bs *Bookings) Add(customerID int, periodStart, periodEnd time.Time, carID int) (*models.Booking, error) {
	periodStart, periodEnd, err := checkPeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	customer, err := bs.company.Customers.FindByID(customerID)
	if err != nil {
		return nil, err
	}
	car, err := bs.company.Cars.FindByID(carID)
	if err != nil {
		return nil, err
	}

	return bs.insert(&models.Booking{
		ID:          bs.company.seq.Next(),
		Customer:    customer,
		Car:         car,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}), nil
}

// AddByCategory books any car of the category; the concrete car is chosen at pickup.
func (bs *Bookings) AddByCategory(customerID int, periodStart, periodEnd time.Time, categoryID int) (*models.Booking, error) {
	periodStart, periodEnd, err := checkPeriod(periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	customer, err := bs.company.Customers.FindByID(customerID)
	if err != nil {
		return nil, err
	}
	category, err := bs.company.Categories.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	if len(bs.company.Cars.FindByCategoryID(category.ID)) == 0 {
		return nil, rentalErrorf("Category %s has no cars to book", category.Label())
	}

	return bs.insert(&models.Booking{
		ID:          bs.company.seq.Next(),
		Customer:    customer,
		Category:    category,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}), nil
}

// Delete removes a booking and the rentals picked up for it.
func (bs *Bookings) Delete(id int) error {
	booking, err := bs.FindByID(id)
	if err != nil {
		return err
	}

	for _, rental := range bs.company.Rentals.Get() {
		if rental.Booking == booking {
			if err := bs.company.Rentals.Delete(rental.ID); err != nil {
				return err
			}
		}
	}

	bs.company.logf("Deleting %s", booking)
	for i, b := range bs.bookings {
		if b == booking {
			bs.bookings = append(bs.bookings[:i], bs.bookings[i+1:]...)
			break
		}
	}
	bs.notify()
	return nil
}

func (bs *Bookings) FindByID(id int) (*models.Booking, error) {
	for _, b := range bs.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, rentalErrorf("Couldn't find booking with id %d", id)
}

func (bs *Bookings) FindByCustomerID(customerID int) []*models.Booking {
	var out []*models.Booking
	for _, b := range bs.bookings {
		if b.Customer.ID == customerID {
			out = append(out, b)
		}
	}
	return out
}

func (bs *Bookings) insert(booking *models.Booking) *models.Booking {
	bs.company.logf("Adding %s", booking)
	bs.bookings = append(bs.bookings, booking)
	bs.notify()
	return booking
}

func (bs *Bookings) notify() {
	bs.Notify(events.Event{Source: SourceBookings, Count: len(bs.bookings)})
}

func checkPeriod(start, end time.Time) (time.Time, time.Time, error) {
	start, end = control.Day(start), control.Day(end)
	if start.After(end) {
		return start, end, rentalErrorf("End Date is before the start date")
	}
	return start, end, nil
}
