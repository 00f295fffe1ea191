package handlerutil

import (
	"pastel-notes/cmd/server/handlers/httperr"
	"pastel-notes/internal/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func NotFoundError() error {
	return httperr.Fail(httperr.ErrNoteNotFound)
}

// ParseAndValidateBody parses request body and validates it
func ParseAndValidateBody(c *fiber.Ctx, req any, validator *validator.Validate, handlerName string) error {
	if err := c.BodyParser(req); err != nil {
		logger.L().Warn("failed to parse request body", "handler", handlerName, "path", c.Path(), "error", err)
		return httperr.Fail(httperr.ErrBadRequest)
	}

	if err := validator.Struct(req); err != nil {
		logger.L().Warn("request validation failed", "handler", handlerName, "path", c.Path(), "error", err)
		return httperr.InvalidInput(err)
	}

	return nil
}

// ExtractNoteID extracts and validates note ID from URL parameter.
// Malformed ids are reported as not found.
func ExtractNoteID(c *fiber.Ctx, handlerName string) (uuid.UUID, error) {
	noteIDStr := c.Params("id")
	if noteIDStr == "" {
		logger.L().Warn("missing note ID parameter", "handler", handlerName, "path", c.Path())
		return uuid.Nil, NotFoundError()
	}

	noteID, err := uuid.Parse(noteIDStr)
	if err != nil {
		logger.L().Info("invalid note ID parameter", "handler", handlerName, "noteIDStr", noteIDStr, "error", err)
		return uuid.Nil, NotFoundError()
	}

	return noteID, nil
}

// HandleLoopError maps a failed store command to a response
func HandleLoopError(err error, handlerName string, noteID *uuid.UUID) error {
	logFields := []any{"handler", handlerName, "error", err}
	if noteID != nil {
		logFields = append(logFields, "noteID", noteID.String())
	}

	e := httperr.FromLoop(err)
	if e == httperr.ErrStoreUnavailable {
		logger.L().Warn("store unavailable", logFields...)
	} else {
		logger.L().Error("store command failed", logFields...)
	}
	return httperr.Fail(e)
}
