package models

import "fmt"

// Rental is an active pickup of a booked car.
type Rental struct {
	ID      int      `json:"id"`
	Booking *Booking `json:"booking"`
	Car     *Car     `json:"car"`
}

func (r *Rental) String() string {
	return fmt.Sprintf("Rental(id=%d, car=%s)", r.ID, r.Car.Label())
}
