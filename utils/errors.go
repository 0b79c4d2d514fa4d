package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	Logger "github.com/reelcult/cultfilm-backend/utils/log"
)

/*

Request error taxonomy. Every handler catches at its own boundary and maps
the failure to exactly one of these; anything unrecognized becomes a 500.
The response body is always {"error": "..."} and never carries internal
detail, which goes to the server log instead.

*/

type RequestError struct {
	Status  int
	Message string
	cause   error
}

func (e *RequestError) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *RequestError) Unwrap() error { return e.cause }

func NewValidationError(msg string) *RequestError {
	return &RequestError{Status: http.StatusBadRequest, Message: msg}
}

func NewAuthenticationError(msg string) *RequestError {
	return &RequestError{Status: http.StatusUnauthorized, Message: msg}
}

func NewAuthorizationError(msg string) *RequestError {
	return &RequestError{Status: http.StatusForbidden, Message: msg}
}

func NewNotFoundError(msg string) *RequestError {
	return &RequestError{Status: http.StatusNotFound, Message: msg}
}

func NewConflictError(msg string) *RequestError {
	return &RequestError{Status: http.StatusConflict, Message: msg}
}

func NewInternalError(msg string, cause error) *RequestError {
	return &RequestError{Status: http.StatusInternalServerError, Message: msg, cause: cause}
}

// IsUniqueViolation reports whether err is the persistence layer's
// uniqueness-constraint failure. Two near-simultaneous writes against the
// same edge race past the handler's pre-check; the constraint is the safety
// net and the result must surface as a conflict, not a 500.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}

// AbortWithError terminates the request with the taxonomy mapping of err.
// Internal errors are logged with their cause before the generic body is
// written.
func AbortWithError(c *gin.Context, err error) {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		reqErr = NewInternalError("internal server error", err)
	}
	if reqErr.Status == http.StatusInternalServerError {
		Logger.LogV2.Errorf("request failed", reqErr.Error())
		c.JSON(reqErr.Status, gin.H{"error": "internal server error"})
		c.Abort()
		return
	}
	c.JSON(reqErr.Status, gin.H{"error": reqErr.Message})
	c.Abort()
}
