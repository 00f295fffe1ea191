package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe bool

func (p fakeProbe) Alive() bool { return bool(p) }

func TestHealthz(t *testing.T) {
	tests := []struct {
		name   string
		alive  bool
		status int
	}{
		{name: "up", alive: true, status: fiber.StatusOK},
		{name: "down", alive: false, status: fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/healthz", Healthz(fakeProbe(tt.alive)))

			resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
