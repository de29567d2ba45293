package handler

import (
	"html/template"
	"strconv"

	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/middleware"
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/sessions"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PageHandler struct {
	Itineraries ItineraryPlanner
	Decoder     *intake.Decoder
	Sessions    *sessions.Manager
	log         *zap.Logger
}

type PageHandlerInterface interface {
	Landing(c *fiber.Ctx) error
	Dashboard(c *fiber.Ctx) error
	SubmitDashboard(c *fiber.Ctx) error
}

func NewPageHandler(itineraries ItineraryPlanner, decoder *intake.Decoder, m *sessions.Manager, log *zap.Logger) *PageHandler {
	return &PageHandler{
		Itineraries: itineraries,
		Decoder:     decoder,
		Sessions:    m,
		log:         log,
	}
}

func (h *PageHandler) Landing(c *fiber.Ctx) error {
	if user, ok := h.Sessions.Current(c); ok {
		c.Locals(middleware.LocalsUser, user)
	}
	return c.Render("landing", viewData(c, h.Sessions, fiber.Map{"Title": "Welcome"}))
}

// maxDestinationSlots caps how many destination fieldsets the form renders.
const maxDestinationSlots = 10

// DestinationSlot is one destination fieldset of the dashboard form.
type DestinationSlot struct {
	Index  int
	Number int
}

func destinationSlots(n int) []DestinationSlot {
	n = min(max(n, 1), maxDestinationSlots)
	slots := make([]DestinationSlot, n)
	for i := range slots {
		slots[i] = DestinationSlot{Index: i, Number: i + 1}
	}
	return slots
}

func (h *PageHandler) renderDashboard(c *fiber.Ctx, status, destinations int, data fiber.Map) error {
	data["Title"] = "Dashboard"
	data["Themes"] = models.Themes
	data["Methods"] = models.TravelingMethods
	data["Slots"] = destinationSlots(destinations)
	return c.Status(status).Render("dashboard", viewData(c, h.Sessions, data))
}

// Dashboard renders the travel form with ?numDestinations fieldsets, one by
// default.
func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	return h.renderDashboard(c, fiber.StatusOK, c.QueryInt("numDestinations", 1), fiber.Map{})
}

// SubmitDashboard handles the server-rendered travel form.
func (h *PageHandler) SubmitDashboard(c *fiber.Ctx) error {
	slots, _ := strconv.Atoi(c.FormValue("numDestinations"))

	req, err := middleware.DecodeTravelRequest(c, h.Decoder)
	if err != nil {
		return h.renderDashboard(c, fiber.StatusBadRequest, slots, fiber.Map{"Error": err.Error()})
	}

	user, _ := c.Locals(middleware.LocalsUser).(models.UserRecord)
	h.log.Info("📥 dashboard plan request", zap.String("user", user.Email), zap.String("from", req.FromLocation))

	plan, err := h.Itineraries.GeneratePlan(c.UserContext(), req)
	if err != nil {
		status, message := generationStatus(err)
		logFailure(h.log, "❌ dashboard plan failed", status, err)
		return h.renderDashboard(c, status, slots, fiber.Map{"Error": message})
	}

	// plan.HTML is sanitized by the markdown pass; plain text is escaped here.
	var rendered template.HTML
	if plan.HTML != "" {
		rendered = template.HTML(plan.HTML)
	} else {
		rendered = template.HTML("<pre>" + template.HTMLEscapeString(plan.Text) + "</pre>")
	}
	h.log.Info("✅ dashboard plan generated", zap.String("user", user.Email))
	return h.renderDashboard(c, fiber.StatusOK, slots, fiber.Map{"Plan": rendered})
}
