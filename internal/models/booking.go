package models

import (
	"fmt"
	"time"
)

// Booking reserves either a specific car or any car of a category.
type Booking struct {
	ID          int       `json:"id"`
	Customer    *Customer `json:"customer"`
	Car         *Car      `json:"car,omitempty"`
	Category    *Category `json:"category,omitempty"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}

func (b *Booking) IsByCategory() bool {
	return b.Car == nil && b.Category != nil
}

func (b *Booking) String() string {
	target := "no car"
	if b.Car != nil {
		target = b.Car.Label()
	} else if b.Category != nil {
		target = "category " + b.Category.Label()
	}
	return fmt.Sprintf("Booking(id=%d, customer=%s, %s)", b.ID, b.Customer.Label(), target)
}
