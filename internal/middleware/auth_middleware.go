package middleware

import (
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// LocalsCSRF is the Locals key the csrf middleware stores its token under.
const LocalsCSRF = "csrf"

// LocalsUser is the Locals key holding the signed-in models.UserRecord.
const LocalsUser = "user"

// RequireLogin sends Anonymous visitors to the login page.
func RequireLogin(m *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := m.Current(c)
		if !ok {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}
		c.Locals(LocalsUser, user)
		return c.Next()
	}
}

// RequireLoginJSON answers Anonymous API calls with 401.
func RequireLoginJSON(m *sessions.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := m.Current(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(models.PlanResponse{
				Success: false,
				Message: "Please log in to generate an itinerary",
			})
		}
		c.Locals(LocalsUser, user)
		return c.Next()
	}
}
