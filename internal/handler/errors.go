package handler

import (
	"errors"

	"travel-itinerary-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// generationStatus maps a plan pipeline error to an HTTP status and a message
// fit for the user.
func generationStatus(err error) (int, string) {
	switch {
	case models.IsValidation(err):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrBlockedContent):
		return fiber.StatusBadRequest, "Your request was blocked by the content safety filter. Please adjust it and try again."
	case errors.Is(err, models.ErrEmptyResult):
		return fiber.StatusInternalServerError, "The itinerary generator returned an empty response. Please try again."
	case errors.Is(err, models.ErrGenerationUnavailable):
		return fiber.StatusInternalServerError, "The itinerary generator is unavailable right now. Please try again later."
	default:
		return fiber.StatusInternalServerError, "An error occurred while generating the itinerary. Please try again."
	}
}

// authStatus maps an identity error to an HTTP status and a message fit for the
// user.
func authStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrInvalidCredentials), errors.Is(err, models.ErrUserNotFound):
		return fiber.StatusUnauthorized, "Invalid credentials or user not found."
	case errors.Is(err, models.ErrUserDisabled):
		return fiber.StatusForbidden, "This account has been disabled."
	case errors.Is(err, models.ErrUserExists):
		return fiber.StatusConflict, "An account with this email already exists."
	case errors.Is(err, models.ErrWeakPassword):
		return fiber.StatusBadRequest, "Password is too weak. Use at least 8 characters."
	case errors.Is(err, models.ErrOAuthExchange):
		return fiber.StatusUnauthorized, "Google sign-in failed. Please try again."
	case models.IsValidation(err):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrIdentityUnavailable):
		return fiber.StatusServiceUnavailable, "Sign-in is temporarily unavailable. Please try again later."
	default:
		return fiber.StatusInternalServerError, "Something went wrong. Please try again."
	}
}

func logFailure(log *zap.Logger, msg string, status int, err error) {
	if status >= fiber.StatusInternalServerError {
		log.Error(msg, zap.Int("status", status), zap.Error(err))
		return
	}
	log.Warn(msg, zap.Int("status", status), zap.Error(err))
}
