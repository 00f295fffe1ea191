package httperr

import (
	"context"
	"errors"

	"pastel-notes/internal/services/notes"

	"github.com/gofiber/fiber/v2"
)

// E represents an HTTP error with status code and message
type E struct {
	Status  int    `json:"-" example:"400"`
	Message string `json:"error" example:"Bad Request"`
}

// Error implements the error interface
func (e E) Error() string {
	return e.Message
}

// JSON returns the error as JSON response
func (e E) JSON(c *fiber.Ctx) error {
	return c.Status(e.Status).JSON(e)
}

// Fail returns the error for Fiber's global error handler to process
func Fail(err E) error {
	return err
}

// InvalidInput wraps a validation error and returns the standard response.
func InvalidInput(err error) error {
	return Fail(E{
		Status:  400,
		Message: "Invalid input: " + err.Error(),
	})
}

// InternalError returns an internal server error with the given message
func InternalError(message string) E {
	return E{Status: 500, Message: message}
}

// Pre-defined HTTP errors
var (
	ErrBadRequest       = E{Status: 400, Message: "Bad Request"}
	ErrNoteNotFound     = E{Status: 404, Message: "Note not found"}
	ErrUpgradeRequired  = E{Status: 400, Message: "WebSocket upgrade required"}
	ErrTooManyRequests  = E{Status: 429, Message: "Too Many Requests"}
	ErrInternal         = InternalError("Internal Server Error")
	ErrStoreUnavailable = E{Status: 503, Message: "Note store unavailable"}
)

// FromLoop maps an error returned by the store loop. A stopped loop or an
// abandoned request means the store cannot answer right now; anything else,
// such as a recovered panic, is internal.
func FromLoop(err error) E {
	switch {
	case errors.Is(err, notes.ErrLoopStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return ErrStoreUnavailable
	default:
		return ErrInternal
	}
}

// Handler is the global error handler for Fiber
func Handler(c *fiber.Ctx, err error) error {
	// Check if it's our custom error type
	var e E
	if errors.As(err, &e) {
		return e.JSON(c)
	}

	var fiberError *fiber.Error
	if errors.As(err, &fiberError) {
		return c.Status(fiberError.Code).JSON(E{
			Status:  fiberError.Code,
			Message: fiberError.Message,
		})
	}

	return ErrInternal.JSON(c)
}
