package routes

import (
	"travel-itinerary-service/internal/handler"

	"github.com/gofiber/fiber/v2"
)

func AuthRoute(router fiber.Router, authHandler handler.AuthHandlerInterface, csrf fiber.Handler) {

	router.Get("/login", csrf, authHandler.LoginPage)
	router.Post("/login", csrf, authHandler.Login)

	router.Get("/register", csrf, authHandler.RegisterPage)
	router.Post("/register", csrf, authHandler.Register)

	router.Post("/logout", csrf, authHandler.Logout)

	router.Get("/google_login", authHandler.GoogleLogin)
	router.Get("/google_login/google/authorized", authHandler.GoogleCallback)
	router.Get("/google_auth", authHandler.GoogleCallback)

}
