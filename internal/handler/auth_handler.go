package handler

import (
	"fmt"
	"strings"

	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/models"
	"travel-itinerary-service/internal/services"
	"travel-itinerary-service/internal/sessions"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Identity services.IdentityProvider
	// OAuth is nil when Google sign-in is not configured.
	OAuth    *services.OAuthService
	Sessions *sessions.Manager
	log      *zap.Logger
}

type AuthHandlerInterface interface {
	LoginPage(c *fiber.Ctx) error
	Login(c *fiber.Ctx) error
	RegisterPage(c *fiber.Ctx) error
	Register(c *fiber.Ctx) error
	GoogleLogin(c *fiber.Ctx) error
	GoogleCallback(c *fiber.Ctx) error
	Logout(c *fiber.Ctx) error
}

func NewAuthHandler(identity services.IdentityProvider, oauth *services.OAuthService, m *sessions.Manager, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		Identity: identity,
		OAuth:    oauth,
		Sessions: m,
		log:      log,
	}
}

func (h *AuthHandler) renderLogin(c *fiber.Ctx, status int, email, errMsg string) error {
	return c.Status(status).Render("login", viewData(c, h.Sessions, fiber.Map{
		"Title":         "Log in",
		"Email":         email,
		"Error":         errMsg,
		"GoogleEnabled": h.OAuth != nil,
	}))
}

func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	if _, ok := h.Sessions.Current(c); ok {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
	return h.renderLogin(c, fiber.StatusOK, "", "")
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var creds models.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, "", "Invalid form submission.")
	}
	creds.Email = strings.TrimSpace(creds.Email)

	if err := intake.Validate(creds); err != nil {
		return h.renderLogin(c, fiber.StatusBadRequest, creds.Email, err.Error())
	}

	user, err := h.Identity.VerifyCredentials(c.UserContext(), creds.Email, creds.Password)
	if err != nil {
		status, message := authStatus(err)
		logFailure(h.log, "🔒 login failed", status, err)
		return h.renderLogin(c, status, creds.Email, message)
	}

	if err := h.Sessions.Login(c, user); err != nil {
		return err
	}
	h.log.Info("🔓 user logged in", zap.String("user", user.Email))
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) renderRegister(c *fiber.Ctx, status int, nu models.NewUser, errMsg string) error {
	return c.Status(status).Render("register", viewData(c, h.Sessions, fiber.Map{
		"Title": "Register",
		"Name":  nu.Name,
		"Email": nu.Email,
		"Error": errMsg,
	}))
}

func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return h.renderRegister(c, fiber.StatusOK, models.NewUser{}, "")
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var nu models.NewUser
	if err := c.BodyParser(&nu); err != nil {
		return h.renderRegister(c, fiber.StatusBadRequest, nu, "Invalid form submission.")
	}
	nu.Name = strings.TrimSpace(nu.Name)
	nu.Email = strings.TrimSpace(nu.Email)

	if err := intake.Validate(nu); err != nil {
		return h.renderRegister(c, fiber.StatusBadRequest, nu, err.Error())
	}

	user, err := h.Identity.CreateUser(c.UserContext(), nu)
	if err != nil {
		status, message := authStatus(err)
		logFailure(h.log, "📝 registration failed", status, err)
		return h.renderRegister(c, status, nu, message)
	}

	h.log.Info("📝 user registered", zap.String("user", user.Email))
	if err := h.Sessions.Flash(c, "Registration successful. Please log in."); err != nil {
		return err
	}
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (h *AuthHandler) GoogleLogin(c *fiber.Ctx) error {
	if h.OAuth == nil {
		if err := h.Sessions.Flash(c, "Google sign-in is not available."); err != nil {
			return err
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	state, authURL := h.OAuth.BeginAuthorization()
	if err := h.Sessions.SetOAuthState(c, state); err != nil {
		return err
	}
	return c.Redirect(authURL, fiber.StatusFound)
}

func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	if h.OAuth == nil {
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	expected, err := h.Sessions.PopOAuthState(c)
	if err != nil {
		return err
	}

	var user models.UserRecord
	if providerErr := c.Query("error"); providerErr != "" {
		err = fmt.Errorf("%w: provider returned %s", models.ErrOAuthExchange, providerErr)
	} else {
		user, err = h.OAuth.CompleteAuthorization(c.UserContext(), expected, c.Query("state"), c.Query("code"))
	}
	if err != nil {
		status, message := authStatus(err)
		logFailure(h.log, "🔒 google sign-in failed", status, err)
		// Drop whatever the failed attempt left in the session.
		if err := h.Sessions.Logout(c); err != nil {
			return err
		}
		if err := h.Sessions.Flash(c, message); err != nil {
			return err
		}
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	if err := h.Sessions.Login(c, user); err != nil {
		return err
	}
	h.log.Info("🔓 user logged in with google", zap.String("user", user.Email))
	return c.Redirect("/dashboard", fiber.StatusSeeOther)
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.Sessions.Logout(c); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}
