package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"carrental/internal/company"
	"carrental/internal/services"
	"carrental/internal/utils"
	"carrental/internal/validators"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

// respond writes the envelope for the outcome of a service call. A tier
// change is a successful result carrying a notice.
func respond(c *gin.Context, log *logger.Logger, statusCode int, message string, data interface{}, err error) {
	if err == nil {
		writeSuccess(c, statusCode, message, data)
		return
	}
	if statusChange, ok := company.AsStatusChange(err); ok {
		utils.SuccessResponseWithNotice(c, statusCode, message, statusChange.Error(), data)
		return
	}
	handleServiceError(c, log, err)
}

func writeSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	if statusCode == http.StatusCreated {
		utils.CreatedResponse(c, message, data)
		return
	}
	utils.SuccessResponse(c, message, data)
}

func handleServiceError(c *gin.Context, log *logger.Logger, err error) {
	var rentalErr *company.RentalError
	switch {
	case errors.Is(err, services.ErrNoCompany):
		utils.NoCompanyResponse(c)
	case errors.As(err, &rentalErr):
		utils.RentalWarningResponse(c, rentalErr.Message)
	default:
		log.WithContext(c.Request.Context()).WithError(err).Error("Request failed")
		utils.InternalServerErrorResponse(c)
	}
}

// bindAndValidate decodes the JSON body into req and runs validate on it.
// It writes the error response and returns false on failure.
func bindAndValidate[T any](c *gin.Context, req *T, validate func(*T) validators.ValidationErrors) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return false
	}
	if errs := validate(req); len(errs) > 0 {
		utils.ValidationErrorResponse(c, errs.Map())
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		utils.BadRequestResponse(c, "Invalid "+name)
		return 0, false
	}
	return id, true
}

func parseDay(c *gin.Context, field, value string) (time.Time, bool) {
	day, err := utils.ParseDate(value)
	if err != nil {
		utils.ValidationErrorResponse(c, map[string]string{field: "Date must be formatted as YYYY-MM-DD"})
		return time.Time{}, false
	}
	return day, true
}
