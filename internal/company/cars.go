package company

import (
	"strings"

	"carrental/internal/events"
	"carrental/internal/models"
)

// Cars manages the fleet of a company.
type Cars struct {
	events.Subject

	cars    []*models.Car
	company *Company
}

func (cs *Cars) Get() []*models.Car {
	out := make([]*models.Car, len(cs.cars))
	copy(out, cs.cars)
	return out
}

// Add registers a new car in an existing category.
func (cs *Cars) Add(model, color string, categoryID int) (*models.Car, error) {
	category, err := cs.company.Categories.FindByID(categoryID)
	if err != nil {
		return nil, err
	}

	car := &models.Car{
		ID:       cs.company.seq.Next(),
		Model:    model,
		Color:    strings.ToLower(strings.TrimSpace(color)),
		Category: category,
	}
	cs.company.logf("Adding %s", car.Label())
	cs.cars = append(cs.cars, car)
	cs.notify()
	return car, nil
}

// Delete removes a car after its bookings and any rental holding it.
func (cs *Cars) Delete(id int) error {
	car, err := cs.FindByID(id)
	if err != nil {
		return err
	}

	for _, rental := range cs.company.Rentals.Get() {
		if rental.Car == car {
			if err := cs.company.Rentals.Delete(rental.ID); err != nil {
				return err
			}
		}
	}

	for _, booking := range cs.company.Bookings.Get() {
		if booking.Car == car {
			if err := cs.company.Bookings.Delete(booking.ID); err != nil {
				return err
			}
		}
	}

	cs.company.logf("Deleting %s", car.Label())
	for i, c := range cs.cars {
		if c == car {
			cs.cars = append(cs.cars[:i], cs.cars[i+1:]...)
			break
		}
	}
	cs.notify()
	return nil
}

func (cs *Cars) FindByID(id int) (*models.Car, error) {
	for _, c := range cs.cars {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, rentalErrorf("Couldn't find car with id %d", id)
}

// FindByCategoryID lists the cars of a category in fleet order.
func (cs *Cars) FindByCategoryID(categoryID int) []*models.Car {
	var out []*models.Car
	for _, c := range cs.cars {
		if c.Category != nil && c.Category.ID == categoryID {
			out = append(out, c)
		}
	}
	return out
}

func (cs *Cars) notify() {
	cs.Notify(events.Event{Source: SourceCars, Count: len(cs.cars)})
}
