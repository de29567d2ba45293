package handler

import (
	"context"

	"travel-itinerary-service/internal/middleware"
	"travel-itinerary-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ItineraryPlanner runs one itinerary generation.
type ItineraryPlanner interface {
	GeneratePlan(ctx context.Context, req models.TravelRequest) (*models.GeneratedItinerary, error)
}

type AIHandler struct {
	Itineraries ItineraryPlanner
	log         *zap.Logger
}

type AIHandlerInterface interface {
	GenerateTripPlanHandler(c *fiber.Ctx) error
}

func NewAIHandler(itineraries ItineraryPlanner, log *zap.Logger) *AIHandler {
	return &AIHandler{
		Itineraries: itineraries,
		log:         log,
	}
}

func (h *AIHandler) GenerateTripPlanHandler(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalsTravelRequest).(models.TravelRequest)
	user, _ := c.Locals(middleware.LocalsUser).(models.UserRecord)
	h.log.Info("📥 plan request received",
		zap.String("user", user.Email),
		zap.String("from", req.FromLocation),
		zap.String("theme", req.PredefinedTheme),
		zap.Int("destinations", len(req.Destinations)))

	plan, err := h.Itineraries.GeneratePlan(c.UserContext(), req)
	if err != nil {
		status, message := generationStatus(err)
		logFailure(h.log, "❌ plan generation failed", status, err)
		return c.Status(status).JSON(models.PlanResponse{
			Success: false,
			Message: message,
			Field:   models.FieldOf(err),
		})
	}

	h.log.Info("✅ plan generated", zap.String("user", user.Email), zap.Int("chars", len(plan.Text)))
	return c.JSON(models.PlanResponse{
		Success: true,
		Plan:    plan.Text,
		HTML:    plan.HTML,
	})
}
