package handlers

import (
	"net/http"

	"carrental/internal/services"
	"carrental/internal/utils"
	"carrental/internal/validators"
	"carrental/pkg/logger"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	rentalService services.RentalService
	logger        *logger.Logger
}

func NewSessionHandler(rentalService services.RentalService, logger *logger.Logger) *SessionHandler {
	return &SessionHandler{
		rentalService: rentalService,
		logger:        logger,
	}
}

// Login starts a customer session for an existing customer id
func (h *SessionHandler) Login(c *gin.Context) {
	var req validators.LoginRequest
	if !bindAndValidate(c, &req, validators.ValidateLogin) {
		return
	}

	result, err := h.rentalService.Login(req.CustomerID)
	if err != nil {
		h.logger.WithContext(c.Request.Context()).LogSecurityEvent("login_failed", "low", map[string]interface{}{
			"customer_id": req.CustomerID,
		})
	}
	respond(c, h.logger, http.StatusOK, utils.MsgLoggedIn, result, err)
}
