package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"pastel-notes/internal/services/notes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromLoop(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want E
	}{
		{name: "stopped loop", err: notes.ErrLoopStopped, want: ErrStoreUnavailable},
		{name: "wrapped stopped loop", err: fmt.Errorf("pin: %w", notes.ErrLoopStopped), want: ErrStoreUnavailable},
		{name: "client gave up", err: context.Canceled, want: ErrStoreUnavailable},
		{name: "deadline", err: context.DeadlineExceeded, want: ErrStoreUnavailable},
		{name: "recovered panic", err: errors.New("store command panicked: boom"), want: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromLoop(tt.err))
		})
	}
}

func TestHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: Handler})
	app.Get("/store", func(c *fiber.Ctx) error { return Fail(FromLoop(notes.ErrLoopStopped)) })
	app.Get("/fiber", func(c *fiber.Ctx) error { return fiber.ErrTeapot })
	app.Get("/other", func(c *fiber.Ctx) error { return errors.New("boom") })

	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/store", status: 503, message: "Note store unavailable"},
		{path: "/fiber", status: fiber.StatusTeapot, message: fiber.ErrTeapot.Message},
		{path: "/other", status: 500, message: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body map[string]string
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body["error"])
		})
	}
}
