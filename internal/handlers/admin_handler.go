package handlers

import (
	"net/http"

	"carrental/internal/services"
	"carrental/internal/utils"
	"carrental/internal/validators"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	rentalService services.RentalService
	logger        *logger.Logger
}

func NewAdminHandler(rentalService services.RentalService, logger *logger.Logger) *AdminHandler {
	return &AdminHandler{
		rentalService: rentalService,
		logger:        logger,
	}
}

// ResetCompany replaces the current company with a new, empty one
func (h *AdminHandler) ResetCompany(c *gin.Context) {
	var req validators.ResetCompanyRequest
	if !bindAndValidate(c, &req, validators.ValidateResetCompany) {
		return
	}

	overview, err := h.rentalService.ResetCompany(c.Request.Context(), req.CompanyName)
	respond(c, h.logger, http.StatusCreated, utils.MsgCompanyReset, overview, err)
}

// SetToday moves the simulated current date
func (h *AdminHandler) SetToday(c *gin.Context) {
	var req validators.SetTodayRequest
	if !bindAndValidate(c, &req, validators.ValidateSetToday) {
		return
	}

	today, ok := parseDay(c, "today", req.Today)
	if !ok {
		return
	}

	overview, err := h.rentalService.SetToday(c.Request.Context(), today)
	respond(c, h.logger, http.StatusOK, utils.MsgTodaySet, overview, err)
}

func (h *AdminHandler) GetOverview(c *gin.Context) {
	overview, err := h.rentalService.Overview()
	respond(c, h.logger, http.StatusOK, utils.MsgOverview, overview, err)
}

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	customers, err := h.rentalService.ListCustomers()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Customers retrieved", customers, &utils.Meta{Count: len(customers)})
}

func (h *AdminHandler) CreateCustomer(c *gin.Context) {
	var req validators.CreateCustomerRequest
	if !bindAndValidate(c, &req, validators.ValidateCreateCustomer) {
		return
	}

	customer, err := h.rentalService.CreateCustomer(c.Request.Context(), req.Name)
	respond(c, h.logger, http.StatusCreated, utils.MsgCustomerAdded, customer, err)
}

func (h *AdminHandler) DeleteCustomer(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.rentalService.DeleteCustomer(c.Request.Context(), id)
	respond(c, h.logger, http.StatusOK, utils.MsgCustomerDeleted, nil, err)
}

func (h *AdminHandler) ListCategories(c *gin.Context) {
	categories, err := h.rentalService.ListCategories()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Categories retrieved", categories, &utils.Meta{Count: len(categories)})
}

func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req validators.CreateCategoryRequest
	if !bindAndValidate(c, &req, validators.ValidateCreateCategory) {
		return
	}

	category, err := h.rentalService.CreateCategory(c.Request.Context(), req.Name)
	respond(c, h.logger, http.StatusCreated, utils.MsgCategoryAdded, category, err)
}

// DeleteCategory removes a category with its cars and their bookings
func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.rentalService.DeleteCategory(c.Request.Context(), id)
	respond(c, h.logger, http.StatusOK, utils.MsgCategoryDeleted, nil, err)
}

func (h *AdminHandler) ListCars(c *gin.Context) {
	cars, err := h.rentalService.ListCars()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Cars retrieved", cars, &utils.Meta{Count: len(cars)})
}

func (h *AdminHandler) CreateCar(c *gin.Context) {
	var req validators.CreateCarRequest
	if !bindAndValidate(c, &req, validators.ValidateCreateCar) {
		return
	}

	car, err := h.rentalService.CreateCar(c.Request.Context(), req.Model, req.Color, req.CategoryID)
	respond(c, h.logger, http.StatusCreated, utils.MsgCarAdded, car, err)
}

func (h *AdminHandler) DeleteCar(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.rentalService.DeleteCar(c.Request.Context(), id)
	respond(c, h.logger, http.StatusOK, utils.MsgCarDeleted, nil, err)
}

func (h *AdminHandler) ListBookings(c *gin.Context) {
	bookings, err := h.rentalService.ListBookings()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Bookings retrieved", bookings, &utils.Meta{Count: len(bookings)})
}

func (h *AdminHandler) ListRentals(c *gin.Context) {
	rentals, err := h.rentalService.ListRentals()
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}
	utils.SuccessResponseWithMeta(c, "Rentals retrieved", rentals, &utils.Meta{Count: len(rentals)})
}
