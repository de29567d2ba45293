package middleware

import (
	"bytes"
	"encoding/json"

	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LocalsTravelRequest is the Locals key holding the decoded models.TravelRequest.
const LocalsTravelRequest = "travel_request"

// DecodeTravelRequest reads a JSON body or a form post into a validated
// models.TravelRequest. JSON numbers keep their text so the budget reaches the
// prompt as written.
func DecodeTravelRequest(c *fiber.Ctx, decoder *intake.Decoder) (models.TravelRequest, error) {
	if !c.Is("json") {
		values := map[string][]string{}
		c.Request().PostArgs().VisitAll(func(k, v []byte) {
			key := string(k)
			values[key] = append(values[key], string(v))
		})
		return decoder.DecodeValues(values)
	}

	raw := map[string]any{}
	if body := c.Body(); len(body) > 0 {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return models.TravelRequest{}, &models.ValidationError{Reason: "malformed JSON body"}
		}
	}
	return decoder.Decode(raw)
}

// TravelRequestMiddleware decodes and validates the plan payload and stores it
// in Locals. Invalid payloads are answered with 400 here.
func TravelRequestMiddleware(decoder *intake.Decoder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req, err := DecodeTravelRequest(c, decoder)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.PlanResponse{
				Success: false,
				Message: err.Error(),
				Field:   models.FieldOf(err),
			})
		}

		c.Locals(LocalsTravelRequest, req)
		return c.Next()
	}
}
