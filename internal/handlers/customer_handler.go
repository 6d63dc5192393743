package handlers

import (
	"net/http"

	"carrental/internal/middleware"
	"carrental/internal/services"
	"carrental/internal/utils"
	"carrental/internal/validators"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	rentalService services.RentalService
	logger        *logger.Logger
}

func NewCustomerHandler(rentalService services.RentalService, logger *logger.Logger) *CustomerHandler {
	return &CustomerHandler{
		rentalService: rentalService,
		logger:        logger,
	}
}

// GetAccount returns the customer with their bookings and rentals
func (h *CustomerHandler) GetAccount(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	account, err := h.rentalService.Account(customerID)
	respond(c, h.logger, http.StatusOK, utils.MsgCustomerOverview, account, err)
}

// CreateBooking books a car or any car of a category
func (h *CustomerHandler) CreateBooking(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var req validators.CreateBookingRequest
	if !bindAndValidate(c, &req, validators.ValidateCreateBooking) {
		return
	}
	start, ok := parseDay(c, "period_start", req.PeriodStart)
	if !ok {
		return
	}
	end, ok := parseDay(c, "period_end", req.PeriodEnd)
	if !ok {
		return
	}

	booking, err := h.rentalService.CreateBooking(c.Request.Context(), customerID, services.BookingInput{
		CarID:       req.CarID,
		CategoryID:  req.CategoryID,
		PeriodStart: start,
		PeriodEnd:   end,
	})
	respond(c, h.logger, http.StatusCreated, utils.MsgBookingAdded, booking, err)
}

func (h *CustomerHandler) CancelBooking(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.rentalService.CancelBooking(c.Request.Context(), customerID, bookingID)
	respond(c, h.logger, http.StatusOK, utils.MsgBookingDeleted, nil, err)
}

// PickUp rents the car of a booking, optionally with an upgrade
func (h *CustomerHandler) PickUp(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}

	var req validators.PickupRequest
	if !bindAndValidate(c, &req, validators.ValidatePickup) {
		return
	}

	rental, err := h.rentalService.PickUp(c.Request.Context(), customerID, req.BookingID, req.Upgrade)
	respond(c, h.logger, http.StatusCreated, utils.MsgRentalAdded, rental, err)
}

// ReturnCar ends the rental of a booking
func (h *CustomerHandler) ReturnCar(c *gin.Context) {
	customerID, ok := customerFromContext(c)
	if !ok {
		return
	}
	bookingID, ok := parseIDParam(c, "booking_id")
	if !ok {
		return
	}

	err := h.rentalService.ReturnCar(c.Request.Context(), customerID, bookingID)
	respond(c, h.logger, http.StatusOK, utils.MsgRentalDeleted, nil, err)
}

func customerFromContext(c *gin.Context) (int, bool) {
	customerID, ok := middleware.GetCustomerID(c)
	if !ok {
		utils.UnauthorizedResponse(c)
	}
	return customerID, ok
}
