package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/task-service/internal/authz"
	"github.com/yukikurage/task-service/internal/dto"
	"github.com/yukikurage/task-service/internal/services"
)

// Error codes
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeForbidden     = "FORBIDDEN"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeUpstreamError = "UPSTREAM_ERROR"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// APIError represents a standardized API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new APIError
func NewAPIError(code, message string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
	}
}

// Resolve maps a service or engine error to its HTTP status and API error.
// Every member of the failure taxonomy keeps its own recognizable kind; the
// upstream-misbehaved variants deliberately map to 502 rather than 404.
func Resolve(err error) (int, *APIError) {
	switch {
	case errors.Is(err, services.ErrTaskAlreadyExists):
		return http.StatusConflict, NewAPIError(ErrCodeAlreadyExists, err.Error())
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, authz.ErrProjectNotFound),
		errors.Is(err, authz.ErrEmployeeNotFound):
		return http.StatusNotFound, NewAPIError(ErrCodeNotFound, err.Error())
	case errors.Is(err, authz.ErrAccessDenied):
		return http.StatusForbidden, NewAPIError(ErrCodeForbidden, err.Error())
	case errors.Is(err, authz.ErrProjectCheckFailed),
		errors.Is(err, authz.ErrEmployeeCheckFailed),
		errors.Is(err, authz.ErrManagerNotRetrieved):
		return http.StatusBadGateway, NewAPIError(ErrCodeUpstreamError, err.Error())
	default:
		return http.StatusInternalServerError, NewAPIError(ErrCodeInternalError, "internal server error")
	}
}

// RespondWithError writes err through the uniform response envelope.
func RespondWithError(c *gin.Context, err error) {
	status, apiErr := Resolve(err)
	c.JSON(status, dto.ResponseWrapper{
		Success: false,
		Message: apiErr.Message,
		Data:    gin.H{"code": apiErr.Code},
	})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	c.JSON(http.StatusUnauthorized, dto.ResponseWrapper{
		Success: false,
		Message: message,
		Data:    gin.H{"code": ErrCodeUnauthorized},
	})
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	c.JSON(http.StatusForbidden, dto.ResponseWrapper{
		Success: false,
		Message: message,
		Data:    gin.H{"code": ErrCodeForbidden},
	})
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "invalid request"
	}
	c.JSON(http.StatusBadRequest, dto.ResponseWrapper{
		Success: false,
		Message: message,
		Data:    gin.H{"code": ErrCodeInvalidInput},
	})
}
