package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	sessiondomain "github.com/smallbiznis/seatcounter/internal/session/domain"
	tabledomain "github.com/smallbiznis/seatcounter/internal/table/domain"
	ticketdomain "github.com/smallbiznis/seatcounter/internal/ticket/domain"
	visitdomain "github.com/smallbiznis/seatcounter/internal/visit/domain"
	"github.com/smallbiznis/seatcounter/pkg/db"
	"gorm.io/gorm"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var ErrInvalidRequest = errors.New("invalid_request")

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case isConflictError(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case db.IsUnavailableErr(err):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "store unreachable",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, tabledomain.ErrInvalidName),
		errors.Is(err, tabledomain.ErrInvalidKind),
		errors.Is(err, tabledomain.ErrInvalidID),
		errors.Is(err, visitdomain.ErrInvalidID),
		errors.Is(err, visitdomain.ErrInvalidCount):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, tabledomain.ErrNotFound),
		errors.Is(err, visitdomain.ErrTableNotFound),
		errors.Is(err, visitdomain.ErrTicketNotFound),
		errors.Is(err, sessiondomain.ErrNotFound),
		errors.Is(err, ticketdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	switch {
	case errors.Is(err, tabledomain.ErrDuplicateName),
		errors.Is(err, visitdomain.ErrNoOpenSession),
		errors.Is(err, visitdomain.ErrNoOpenTickets),
		errors.Is(err, visitdomain.ErrNothingToUndo),
		errors.Is(err, ticketdomain.ErrAlreadyClosed),
		errors.Is(err, ticketdomain.ErrStillOpen),
		errors.Is(err, sessiondomain.ErrAlreadyClosed):
		return true
	default:
		return false
	}
}
