package utils

import "time"

// Application Constants
const (
	AppName    = "CarRental"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour

	// Dates are exchanged as calendar days
	DateLayout = "2006-01-02"
)

// Context keys set by the middleware
const (
	ContextKeyRequestID  = "request_id"
	ContextKeyCustomerID = "customer_id"
	ContextKeyRole       = "role"
)

// Roles carried in session tokens
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Codes
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeBadRequest      = "BAD_REQUEST"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeNoCompany       = "NO_COMPANY"
	CodeRentalWarning   = "RENTAL_WARNING"
	CodeInternalError   = "INTERNAL_ERROR"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrTokenExpired     = "token expired"
	ErrInvalidInput     = "invalid input"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
	ErrNoCompany        = "no company exists yet, reset one first"
	ErrCustomerNotFound = "customer not found"
)

// Success Messages
const (
	MsgCompanyReset     = "Company created"
	MsgTodaySet         = "Today updated"
	MsgCustomerAdded    = "Customer added"
	MsgCustomerDeleted  = "Customer deleted"
	MsgCategoryAdded    = "Category added"
	MsgCategoryDeleted  = "Category deleted"
	MsgCarAdded         = "Car added"
	MsgCarDeleted       = "Car deleted"
	MsgBookingAdded     = "Booking added"
	MsgBookingDeleted   = "Booking deleted"
	MsgRentalAdded      = "Car picked up"
	MsgRentalDeleted    = "Car returned"
	MsgLoggedIn         = "Logged in"
	MsgOverview         = "Company overview"
	MsgCustomerOverview = "Customer overview"
)
