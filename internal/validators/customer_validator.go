package validators

type LoginRequest struct {
	CustomerID int `json:"customer_id" validate:"required,min=1"`
}

// CreateBookingRequest books either a specific car or any car of a category.
type CreateBookingRequest struct {
	CarID       int    `json:"car_id" validate:"omitempty,min=1"`
	CategoryID  int    `json:"category_id" validate:"omitempty,min=1"`
	PeriodStart string `json:"period_start" validate:"required,iso_date"`
	PeriodEnd   string `json:"period_end" validate:"required,iso_date"`
}

type PickupRequest struct {
	BookingID int  `json:"booking_id" validate:"required,min=1"`
	Upgrade   bool `json:"upgrade"`
}

func ValidateLogin(req *LoginRequest) ValidationErrors {
	return ValidateStruct(req)
}

// ValidateCreateBooking leaves the period order to the rental rules so the
// customer sees the same warning as for any other invalid booking.
func ValidateCreateBooking(req *CreateBookingRequest) ValidationErrors {
	errors := ValidateStruct(req)

	switch {
	case req.CarID == 0 && req.CategoryID == 0:
		errors = append(errors, ValidationError{
			Field:   "car_id",
			Message: "Either car_id or category_id is required",
		})
	case req.CarID != 0 && req.CategoryID != 0:
		errors = append(errors, ValidationError{
			Field:   "category_id",
			Message: "A booking is for either a car or a category, not both",
		})
	}

	return errors
}

func ValidatePickup(req *PickupRequest) ValidationErrors {
	return ValidateStruct(req)
}
