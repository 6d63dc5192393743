package company

import (
	"time"

	"carrental/internal/models"
)

// The Restore methods re-insert previously persisted entities with their
// original ids. They neither log nor notify observers and expect every
// referenced entity to be restored first.

func (cs *Customers) Restore(customer *models.Customer) error {
	if _, err := cs.FindByID(customer.ID); err == nil {
		return rentalErrorf("Duplicate customer id %d", customer.ID)
	}
	if !customer.Status.IsValid() {
		customer.Status = models.StatusForPoints(customer.Points)
	}
	cs.customers = append(cs.customers, customer)
	return nil
}

func (cs *Categories) Restore(category *models.Category) error {
	if _, err := cs.FindByID(category.ID); err == nil {
		return rentalErrorf("Duplicate category id %d", category.ID)
	}
	cs.categories = append(cs.categories, category)
	return nil
}

func (cs *Cars) Restore(id int, model, color string, categoryID int) (*models.Car, error) {
	if _, err := cs.FindByID(id); err == nil {
		return nil, rentalErrorf("Duplicate car id %d", id)
	}
	category, err := cs.company.Categories.FindByID(categoryID)
	if err != nil {
		return nil, err
	}
	car := &models.Car{ID: id, Model: model, Color: color, Category: category}
	cs.cars = append(cs.cars, car)
	return car, nil
}

// Restore re-inserts a booking; exactly one of carID and categoryID is non-zero.
func (bs *Bookings) Restore(b RestoredBooking) (*models.Booking, error) {
	if _, err := bs.FindByID(b.ID); err == nil {
		return nil, rentalErrorf("Duplicate booking id %d", b.ID)
	}
	if (b.CarID == 0) == (b.CategoryID == 0) {
		return nil, rentalErrorf("Booking %d must reference either a car or a category", b.ID)
	}
	start, end, err := checkPeriod(b.PeriodStart, b.PeriodEnd)
	if err != nil {
		return nil, err
	}
	customer, err := bs.company.Customers.FindByID(b.CustomerID)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{ID: b.ID, Customer: customer, PeriodStart: start, PeriodEnd: end}
	if b.CarID != 0 {
		if booking.Car, err = bs.company.Cars.FindByID(b.CarID); err != nil {
			return nil, err
		}
	} else {
		if booking.Category, err = bs.company.Categories.FindByID(b.CategoryID); err != nil {
			return nil, err
		}
	}
	bs.bookings = append(bs.bookings, booking)
	return booking, nil
}

func (rs *Rentals) Restore(id, bookingID, carID int) (*models.Rental, error) {
	if _, err := rs.FindByID(id); err == nil {
		return nil, rentalErrorf("Duplicate rental id %d", id)
	}
	booking, err := rs.company.Bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	car, err := rs.company.Cars.FindByID(carID)
	if err != nil {
		return nil, err
	}
	rental := &models.Rental{ID: id, Booking: booking, Car: car}
	rs.rentals = append(rs.rentals, rental)
	return rental, nil
}

// RestoredBooking carries the flat form of a persisted booking.
type RestoredBooking struct {
	ID          int
	CustomerID  int
	CarID       int
	CategoryID  int
	PeriodStart time.Time
	PeriodEnd   time.Time
}
