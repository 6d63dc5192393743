package services

import (
	"carrental/internal/models"
	"carrental/internal/utils"
)

// Views are detached copies of the company graph. They are built while the
// service lock is held so handlers can encode them without racing mutations.

type CustomerView struct {
	ID     int                   `json:"id"`
	Name   string                `json:"name"`
	Points int                   `json:"points"`
	Status models.CustomerStatus `json:"status"`
}

type CategoryView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Cars int    `json:"cars"`
}

type CarView struct {
	ID           int    `json:"id"`
	Model        string `json:"model"`
	Color        string `json:"color"`
	CategoryID   int    `json:"category_id"`
	CategoryName string `json:"category_name"`
}

type BookingView struct {
	ID          int    `json:"id"`
	CustomerID  int    `json:"customer_id"`
	CarID       int    `json:"car_id,omitempty"`
	CategoryID  int    `json:"category_id,omitempty"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Rented      bool   `json:"rented"`
}

type RentalView struct {
	ID         int    `json:"id"`
	BookingID  int    `json:"booking_id"`
	CustomerID int    `json:"customer_id"`
	CarID      int    `json:"car_id"`
	CarModel   string `json:"car_model"`
	CarColor   string `json:"car_color"`
}

// AccountView is everything a logged in customer sees about themselves.
type AccountView struct {
	Customer CustomerView  `json:"customer"`
	Bookings []BookingView `json:"bookings"`
	Rentals  []RentalView  `json:"rentals"`
}

type Overview struct {
	CompanyName string `json:"company_name"`
	Today       string `json:"today"`
	CurrentID   int    `json:"current_id"`
	Customers   int    `json:"customers"`
	Categories  int    `json:"categories"`
	Cars        int    `json:"cars"`
	Bookings    int    `json:"bookings"`
	Rentals     int    `json:"rentals"`
}

func customerView(c *models.Customer) CustomerView {
	return CustomerView{ID: c.ID, Name: c.Name, Points: c.Points, Status: c.Status}
}

func carView(c *models.Car) CarView {
	view := CarView{ID: c.ID, Model: c.Model, Color: c.Color}
	if c.Category != nil {
		view.CategoryID = c.Category.ID
		view.CategoryName = c.Category.Name
	}
	return view
}

func bookingView(b *models.Booking, rented bool) BookingView {
	view := BookingView{
		ID:          b.ID,
		CustomerID:  b.Customer.ID,
		PeriodStart: utils.FormatDate(b.PeriodStart),
		PeriodEnd:   utils.FormatDate(b.PeriodEnd),
		Rented:      rented,
	}
	if b.Car != nil {
		view.CarID = b.Car.ID
	} else if b.Category != nil {
		view.CategoryID = b.Category.ID
	}
	return view
}

func rentalView(r *models.Rental) RentalView {
	return RentalView{
		ID:         r.ID,
		BookingID:  r.Booking.ID,
		CustomerID: r.Booking.Customer.ID,
		CarID:      r.Car.ID,
		CarModel:   r.Car.Model,
		CarColor:   r.Car.Color,
	}
}
