package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Prober reports whether the store loop is accepting commands.
type Prober interface {
	Alive() bool
}

// Healthz returns the health of the server.
// @Summary Health check
// @Description Check if the store loop is running
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /healthz [get]
func Healthz(check Prober) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !check.Alive() {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "down",
				"error":  "store loop not running",
			})
		}

		return c.JSON(fiber.Map{
			"status": "ok",
		})
	}
}
