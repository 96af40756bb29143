package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes for business-rule and infrastructure failures.
const (
	CodeInvalidInput       = "invalidInput"
	CodeNotFound           = "notFound"
	CodeForbidden          = "forbidden"
	CodeConflict           = "conflict"
	CodePreconditionFailed = "preconditionFailed"
	CodeUnauthenticated    = "unauthenticated"
	CodeInternal           = "internal"
)

// AppError is a coded error surfaced to API clients. Business-rule violations
// are detected and returned before any write; persistence failures are wrapped
// as CodeInternal.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidInput(msg string) error {
	return &AppError{Code: CodeInvalidInput, Message: msg}
}

func NewNotFound(msg string) error {
	return &AppError{Code: CodeNotFound, Message: msg}
}

func NewForbidden(msg string) error {
	return &AppError{Code: CodeForbidden, Message: msg}
}

func NewConflict(msg string) error {
	return &AppError{Code: CodeConflict, Message: msg}
}

func NewPreconditionFailed(msg string) error {
	return &AppError{Code: CodePreconditionFailed, Message: msg}
}

func NewUnauthenticated(msg string) error {
	return &AppError{Code: CodeUnauthenticated, Message: msg}
}

func NewInternal(msg string) error {
	return &AppError{Code: CodeInternal, Message: msg}
}

// HTTPStatus maps an error to its HTTP status code. Unknown errors are
// reported as 500.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeForbidden:
		return http.StatusForbidden
	case CodeConflict:
		return http.StatusConflict
	case CodePreconditionFailed:
		return http.StatusPreconditionFailed
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorResponse defines the structure of error responses
type ErrorResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ErrorHandler is a middleware to catch panics and return structured errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				Logger := GetLogger()
				Logger.Error("Unhandled panic", zap.Any("error", err))

				c.JSON(http.StatusInternalServerError, ErrorResponse{
					Message: "Internal Server Error",
					Details: "An unexpected error occurred. Please try again later.",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// JSONError sends a standardized JSON error response
func JSONError(c *gin.Context, status int, message string, details string) {
	Logger := GetLogger()
	Logger.Warn(message, zap.String("details", details))
	c.JSON(status, ErrorResponse{Message: message, Details: details})
}

// RespondError writes err as a structured JSON response with the status from
// its error code.
func RespondError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	var appErr *AppError
	if errors.As(err, &appErr) {
		JSONError(c, status, appErr.Message, "")
		return
	}
	JSONError(c, status, "internal server error", err.Error())
}
