package handler

import (
	"travel-itinerary-service/internal/middleware"
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/sessions"

	"github.com/gofiber/fiber/v2"
)

// viewData fills the keys every page template reads, then applies data on top.
func viewData(c *fiber.Ctx, m *sessions.Manager, data fiber.Map) fiber.Map {
	csrf, _ := c.Locals(middleware.LocalsCSRF).(string)
	out := fiber.Map{
		"Title":         "",
		"User":          nil,
		"Flash":         m.PopFlash(c),
		"Error":         "",
		"CSRF":          csrf,
		"Email":         "",
		"Name":          "",
		"GoogleEnabled": false,
		"Plan":          nil,
	}
	if user, ok := c.Locals(middleware.LocalsUser).(models.UserRecord); ok {
		out["User"] = &user
	}
	for k, v := range data {
		out[k] = v
	}
	return out
}
