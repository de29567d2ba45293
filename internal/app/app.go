// Package app assembles the fiber application from its dependencies.
package app

import (
	"errors"

	"travel-itinerary-service/internal/handler"
	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/middleware"
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/routes"
	"travel-itinerary-service/internal/services"
	"travel-itinerary-service/internal/sessions"
	"travel-itinerary-service/internal/views"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

type Deps struct {
	Log         *zap.Logger
	Identity    services.IdentityProvider
	OAuth       *services.OAuthService
	Itineraries handler.ItineraryPlanner
	Decoder     *intake.Decoder
	Sessions    *sessions.Manager

	CSRF         bool
	CookieSecure bool
}

func New(d Deps) *fiber.App {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	app := fiber.New(fiber.Config{
		AppName:      "travel-itinerary-service",
		Views:        views.Engine(),
		ViewsLayout:  views.Layout,
		ErrorHandler: errorHandler(d.Log),
	})

	app.Use(middleware.RequestLogger(d.Log))
	app.Use(recover.New())

	csrfMiddleware := func(c *fiber.Ctx) error { return c.Next() }
	if d.CSRF {
		csrfMiddleware = csrf.New(csrf.Config{
			KeyLookup:      "form:csrf_token",
			CookieName:     "csrf_",
			CookieSameSite: "Lax",
			CookieSecure:   d.CookieSecure,
			CookieHTTPOnly: true,
			ContextKey:     middleware.LocalsCSRF,
		})
	}

	aiHandler := handler.NewAIHandler(d.Itineraries, d.Log)
	authHandler := handler.NewAuthHandler(d.Identity, d.OAuth, d.Sessions, d.Log)
	pageHandler := handler.NewPageHandler(d.Itineraries, d.Decoder, d.Sessions, d.Log)

	routes.PageRoute(app, pageHandler, middleware.RequireLogin(d.Sessions), csrfMiddleware)
	routes.AuthRoute(app, authHandler, csrfMiddleware)
	routes.AIRoute(app, aiHandler, middleware.RequireLoginJSON(d.Sessions), middleware.TravelRequestMiddleware(d.Decoder))

	return app
}

// errorHandler answers anything a handler did not handle itself with the plan
// response envelope.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("💥 unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(models.PlanResponse{Success: false, Message: message})
	}
}
