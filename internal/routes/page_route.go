package routes

import (
	"travel-itinerary-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func PageRoute(router fiber.Router, pageHandler handler.PageHandlerInterface, requireLogin, csrf fiber.Handler) {

	router.Get("/", csrf, pageHandler.Landing)

	router.Get("/dashboard", requireLogin, csrf, pageHandler.Dashboard)
	router.Post("/dashboard", requireLogin, csrf, pageHandler.SubmitDashboard)

	router.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

}
