package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Prakash9019/my-cricket-reg-app/internal/domain/entity"
	"github.com/Prakash9019/my-cricket-reg-app/internal/handler/http/dto"
)

const genericFailureMessage = "Registration failed. Please try again later."

// ErrorHandler centralizes error handling for HTTP responses
func ErrorHandler(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{Error: message})
}

// SuccessHandler centralizes success responses
func SuccessHandler(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// BindAndValidate binds JSON request and validates it
func BindAndValidate(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		ErrorHandler(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return err
	}
	return nil
}

// UsecaseErrorHandler maps domain errors to status codes. Client-correctable
// problems are 400 with details; infrastructure failures are 500 with fallback.
func UsecaseErrorHandler(c *gin.Context, err error, fallback string) {
	var missing *entity.MissingFieldError
	var invalid *entity.SchemaValidationError
	var duplicate *entity.DuplicateKeyError
	switch {
	case errors.As(err, &missing):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing required fields", MissingFields: missing.Fields})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Errors: invalid.Violations})
	case errors.As(err, &duplicate):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: duplicate.Error(), Field: duplicate.Field})
	case errors.Is(err, entity.ErrPlayerNotFound):
		ErrorHandler(c, http.StatusNotFound, "Player not found")
	case errors.Is(err, entity.ErrInvalidCredentials):
		ErrorHandler(c, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, entity.ErrAccountNotActive):
		ErrorHandler(c, http.StatusForbidden, "Account is not active")
	default:
		ErrorHandler(c, http.StatusInternalServerError, fallback)
	}
}
