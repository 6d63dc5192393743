package company

import (
	"time"

	"carrental/internal/control"
	"carrental/internal/events"
	"carrental/internal/models"
)

const (
	UpgradeModel = "special_upgrade"
	UpgradeColor = "silver"

	dateLayout = "2006-01-02"
)

// Rentals manages the cars currently picked up.
type Rentals struct {
	events.Subject

	rentals []*models.Rental
	company *Company
}

func (rs *Rentals) Get() []*models.Rental {
	out := make([]*models.Rental, len(rs.rentals))
	copy(out, rs.rentals)
	return out
}

// Add picks up the car of a booking. Pickup is only possible on the start
// date of the booking and only if the car is not rented for an overlapping
// period. Category bookings get the first free car of their category.
//
// The earned loyalty points are credited right away; when that moves the
// customer to another tier the rental is returned together with a
// *StatusChangeError.
func (rs *Rentals) Add(bookingID int) (*models.Rental, error) {
	booking, err := rs.FindPickupBooking(bookingID)
	if err != nil {
		return nil, err
	}

	car, err := rs.availableCar(booking)
	if err != nil {
		return nil, err
	}

	points, err := rs.CalculatePoints(booking.Customer.ID, car.ID, booking.PeriodStart, booking.PeriodEnd)
	if err != nil {
		return nil, err
	}

	rental := rs.insert(booking, car)
	rs.company.logf("Points %d", points)
	statusErr := rs.company.Customers.AddPoints(booking.Customer.ID, points)

	rs.notify()
	return rental, statusErr
}

// AddWithUpgrade picks up a booking with a freshly added upgrade car of the
// same category. The customer pays for the upgrade with loyalty points and the
// original booking is replaced by one for the upgrade car.
//
// Nothing is changed when the pickup is refused.
func (rs *Rentals) AddWithUpgrade(bookingID int) (*models.Rental, error) {
	booking, err := rs.FindPickupBooking(bookingID)
	if err != nil {
		return nil, err
	}

	category := booking.Category
	if booking.Car != nil {
		category = booking.Car.Category
	}
	if category == nil {
		return nil, rentalErrorf("Booking %d has no category to upgrade in", booking.ID)
	}

	status, err := rs.company.Customers.GetStatus(booking.Customer.ID)
	if err != nil {
		return nil, err
	}
	points, err := periodPoints(status, &models.Car{Color: UpgradeColor}, booking.PeriodStart, booking.PeriodEnd)
	if err != nil {
		return nil, err
	}

	car, err := rs.company.Cars.Add(UpgradeModel, UpgradeColor, category.ID)
	if err != nil {
		return nil, err
	}
	upgraded, err := rs.company.Bookings.Add(booking.Customer.ID, booking.PeriodStart, booking.PeriodEnd, car.ID)
	if err != nil {
		if rollbackErr := rs.company.Cars.Delete(car.ID); rollbackErr != nil {
			rs.company.logf("Rollback of upgrade car %d failed: %v", car.ID, rollbackErr)
		}
		return nil, err
	}
	if err := rs.company.Bookings.Delete(booking.ID); err != nil {
		if rollbackErr := rs.company.Cars.Delete(car.ID); rollbackErr != nil {
			rs.company.logf("Rollback of upgrade car %d failed: %v", car.ID, rollbackErr)
		}
		return nil, err
	}

	rental := rs.insert(upgraded, car)
	rs.company.logf("Points %d", -points)
	statusErr := rs.company.Customers.SubtractPoints(booking.Customer.ID, points)

	rs.notify()
	return rental, statusErr
}

func (rs *Rentals) Delete(id int) error {
	rental, err := rs.FindByID(id)
	if err != nil {
		return err
	}

	rs.company.logf("Deleting %s", rental)
	for i, r := range rs.rentals {
		if r == rental {
			rs.rentals = append(rs.rentals[:i], rs.rentals[i+1:]...)
			break
		}
	}
	rs.notify()
	return nil
}

func (rs *Rentals) FindByID(id int) (*models.Rental, error) {
	for _, r := range rs.rentals {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, rentalErrorf("Couldn't find rental with id %d", id)
}

// FindByBookingID returns the rental picked up for a booking, if any.
func (rs *Rentals) FindByBookingID(bookingID int) (*models.Rental, bool) {
	for _, r := range rs.rentals {
		if r.Booking.ID == bookingID {
			return r, true
		}
	}
	return nil, false
}

func (rs *Rentals) FindByCustomerID(customerID int) []*models.Rental {
	var out []*models.Rental
	for _, r := range rs.rentals {
		if r.Booking.Customer.ID == customerID {
			out = append(out, r)
		}
	}
	return out
}

// FindPickupBooking resolves a booking that has not been picked up yet and
// checks that today is its start date.
func (rs *Rentals) FindPickupBooking(bookingID int) (*models.Booking, error) {
	booking, err := rs.company.Bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	if _, ok := rs.FindByBookingID(booking.ID); ok {
		return nil, rentalErrorf("Booking %d has already been picked up", booking.ID)
	}

	today := rs.company.cal.Today()
	if !today.Equal(booking.PeriodStart) {
		return nil, rentalErrorf("A car can only be picked up on the start-date of the booking (%s). But today is %s",
			booking.PeriodStart.Format(dateLayout), today.Format(dateLayout))
	}
	return booking, nil
}

// CalculatePoints computes the loyalty points for renting a car over a period:
// days × tier multiplier × color multiplier, with a one day minimum.
func (rs *Rentals) CalculatePoints(customerID, carID int, periodStart, periodEnd time.Time) (int, error) {
	status, err := rs.company.Customers.GetStatus(customerID)
	if err != nil {
		return 0, err
	}
	car, err := rs.company.Cars.FindByID(carID)
	if err != nil {
		return 0, err
	}
	return periodPoints(status, car, periodStart, periodEnd)
}

func periodPoints(status models.CustomerStatus, car *models.Car, periodStart, periodEnd time.Time) (int, error) {
	if periodStart.After(periodEnd) {
		return 0, rentalErrorf("End Date is before the start date")
	}

	days := control.DaysBetween(periodStart, periodEnd)
	if days < 1 {
		days = 1
	}
	return days * status.Multiplier() * car.ColorMultiplier(), nil
}

// IsRented reports whether the car has a rental overlapping the period.
func (rs *Rentals) IsRented(car *models.Car, periodStart, periodEnd time.Time) bool {
	for _, r := range rs.rentals {
		if r.Car.ID != car.ID {
			continue
		}
		if PeriodsOverlap(periodStart, periodEnd, r.Booking.PeriodStart, r.Booking.PeriodEnd) {
			return true
		}
	}
	return false
}

// PeriodsOverlap is an inclusive overlap test that tolerates reversed bounds.
func PeriodsOverlap(start, end, otherStart, otherEnd time.Time) bool {
	return !maxTime(start, end).Before(minTime(otherStart, otherEnd)) &&
		!minTime(start, end).After(maxTime(otherStart, otherEnd))
}

func (rs *Rentals) availableCar(booking *models.Booking) (*models.Car, error) {
	start, end := booking.PeriodStart, booking.PeriodEnd

	if booking.Car != nil {
		if rs.IsRented(booking.Car, start, end) {
			return nil, rentalErrorf("Car %s cannot be rented for period %s - %s, because it has already been rented.",
				booking.Car.Label(), start.Format(dateLayout), end.Format(dateLayout))
		}
		return booking.Car, nil
	}

	if booking.Category == nil {
		return nil, rentalErrorf("Booking %d references neither a car nor a category", booking.ID)
	}
	for _, car := range rs.company.Cars.FindByCategoryID(booking.Category.ID) {
		if !rs.IsRented(car, start, end) {
			return car, nil
		}
	}
	return nil, rentalErrorf("No car of category %s is available for period %s - %s",
		booking.Category.Label(), start.Format(dateLayout), end.Format(dateLayout))
}

func (rs *Rentals) insert(booking *models.Booking, car *models.Car) *models.Rental {
	rental := &models.Rental{
		ID:      rs.company.seq.Next(),
		Booking: booking,
		Car:     car,
	}
	rs.company.logf("Adding %s", rental)
	rs.rentals = append(rs.rentals, rental)
	return rental
}

func (rs *Rentals) notify() {
	rs.Notify(events.Event{Source: SourceRentals, Count: len(rs.rentals)})
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
