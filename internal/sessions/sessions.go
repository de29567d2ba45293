// Package sessions tracks whether a browser is Anonymous or Authenticated.
// State lives in fiber's in-memory session store, so every session is
// Anonymous again after a restart.
package sessions

import (
	"time"

	"travel-itinerary-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	keyUserID     = "user_id"
	keyUserEmail  = "user_email"
	keyUserName   = "user_name"
	keyOAuthState = "oauth_state"
	keyFlash      = "flash"

	cookieName = "itinerary_session"
)

type Config struct {
	Expiration   time.Duration
	CookieSecure bool
}

type Manager struct {
	store *session.Store
}

func NewManager(cfg Config) *Manager {
	return &Manager{
		store: session.New(session.Config{
			Expiration:     cfg.Expiration,
			KeyLookup:      "cookie:" + cookieName,
			CookieHTTPOnly: true,
			CookieSecure:   cfg.CookieSecure,
			CookieSameSite: fiber.CookieSameSiteLaxMode,
		}),
	}
}

// Store exposes the underlying store for middleware that shares it.
func (m *Manager) Store() *session.Store {
	return m.store
}

// Login moves the session to Authenticated under a fresh session id.
func (m *Manager) Login(c *fiber.Ctx, user models.UserRecord) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	if err := sess.Regenerate(); err != nil {
		return err
	}
	sess.Delete(keyOAuthState)
	sess.Set(keyUserID, user.ID)
	sess.Set(keyUserEmail, user.Email)
	sess.Set(keyUserName, user.DisplayName)
	return sess.Save()
}

// Logout returns the session to Anonymous and drops every key.
func (m *Manager) Logout(c *fiber.Ctx) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	return sess.Destroy()
}

// Current returns the signed-in user. Expired or unknown sessions are
// Anonymous.
func (m *Manager) Current(c *fiber.Ctx) (models.UserRecord, bool) {
	sess, err := m.store.Get(c)
	if err != nil {
		return models.UserRecord{}, false
	}
	id, _ := sess.Get(keyUserID).(string)
	if id == "" {
		return models.UserRecord{}, false
	}
	email, _ := sess.Get(keyUserEmail).(string)
	name, _ := sess.Get(keyUserName).(string)
	return models.UserRecord{ID: id, Email: email, DisplayName: name}, true
}

// SetOAuthState remembers the state issued for a pending Google sign-in.
func (m *Manager) SetOAuthState(c *fiber.Ctx, state string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(keyOAuthState, state)
	return sess.Save()
}

// PopOAuthState returns and clears the pending state. The state is single use.
func (m *Manager) PopOAuthState(c *fiber.Ctx) (string, error) {
	sess, err := m.store.Get(c)
	if err != nil {
		return "", err
	}
	state, _ := sess.Get(keyOAuthState).(string)
	sess.Delete(keyOAuthState)
	return state, sess.Save()
}

// Flash stores a message for the next rendered page.
func (m *Manager) Flash(c *fiber.Ctx, message string) error {
	sess, err := m.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(keyFlash, message)
	return sess.Save()
}

// PopFlash returns and clears the pending flash message.
func (m *Manager) PopFlash(c *fiber.Ctx) string {
	sess, err := m.store.Get(c)
	if err != nil {
		return ""
	}
	msg, _ := sess.Get(keyFlash).(string)
	if msg == "" {
		return ""
	}
	sess.Delete(keyFlash)
	_ = sess.Save()
	return msg
}
