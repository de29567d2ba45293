package routes

import (
	"travel-itinerary-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

// AIRoute registers the JSON plan endpoints. requireAuth runs before intake so
// Anonymous callers never reach body parsing.
func AIRoute(router fiber.Router, aiHandler handler.AIHandlerInterface, requireAuth, intake fiber.Handler) {

	router.Post("/generate_plan", requireAuth, intake, aiHandler.GenerateTripPlanHandler)

	api := router.Group("/api/v1")

	api.Post("/plans", requireAuth, intake, aiHandler.GenerateTripPlanHandler)

}
