package sessions

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-itinerary-service/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(m *Manager) *fiber.App {
	app := fiber.New()
	app.Post("/login", func(c *fiber.Ctx) error {
		return m.Login(c, models.UserRecord{ID: "u-1", Email: "kiran@example.com", DisplayName: "Kiran"})
	})
	app.Post("/logout", func(c *fiber.Ctx) error {
		return m.Logout(c)
	})
	app.Get("/me", func(c *fiber.Ctx) error {
		user, ok := m.Current(c)
		if !ok {
			return c.SendStatus(fiber.StatusUnauthorized)
		}
		return c.SendString(user.Email)
	})
	app.Post("/state", func(c *fiber.Ctx) error {
		return m.SetOAuthState(c, "state-xyz")
	})
	app.Get("/state", func(c *fiber.Ctx) error {
		state, err := m.PopOAuthState(c)
		if err != nil {
			return err
		}
		return c.SendString(state)
	})
	app.Post("/flash", func(c *fiber.Ctx) error {
		return m.Flash(c, "Welcome back")
	})
	app.Get("/flash", func(c *fiber.Ctx) error {
		return c.SendString(m.PopFlash(c))
	})
	return app
}

// do sends a request carrying cookie (when set) and returns the response and
// the session cookie it set, falling back to the one sent.
func do(t *testing.T, app *fiber.App, method, path string, cookie *http.Cookie) (*http.Response, *http.Cookie) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			return resp, c
		}
	}
	return resp, cookie
}

func body(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func TestLoginLogoutTransitions(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Hour}))

	resp, _ := do(t, app, http.MethodGet, "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	_, cookie := do(t, app, http.MethodPost, "/login", nil)
	require.NotNil(t, cookie)

	resp, _ = do(t, app, http.MethodGet, "/me", cookie)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "kiran@example.com", body(t, resp))

	do(t, app, http.MethodPost, "/logout", cookie)

	resp, _ = do(t, app, http.MethodGet, "/me", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRegeneratesSessionID(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Hour}))

	_, anon := do(t, app, http.MethodPost, "/state", nil)
	require.NotNil(t, anon)

	_, authed := do(t, app, http.MethodPost, "/login", anon)
	require.NotNil(t, authed)
	assert.NotEqual(t, anon.Value, authed.Value)

	resp, _ := do(t, app, http.MethodGet, "/me", anon)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Second}))

	_, cookie := do(t, app, http.MethodPost, "/login", nil)
	require.NotNil(t, cookie)

	time.Sleep(2500 * time.Millisecond)

	resp, _ := do(t, app, http.MethodGet, "/me", cookie)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestUnknownSessionIsAnonymous(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Hour}))

	resp, _ := do(t, app, http.MethodGet, "/me", &http.Cookie{Name: cookieName, Value: "forged-session-id"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestOAuthStateIsSingleUse(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Hour}))

	_, cookie := do(t, app, http.MethodPost, "/state", nil)
	do(t, app, http.MethodPost, "/flash", cookie)

	resp, _ := do(t, app, http.MethodGet, "/state", cookie)
	assert.Equal(t, "state-xyz", body(t, resp))

	resp, _ = do(t, app, http.MethodGet, "/state", cookie)
	assert.Empty(t, body(t, resp))
}

func TestFlashIsShownOnce(t *testing.T) {
	app := newTestApp(NewManager(Config{Expiration: time.Hour}))

	_, cookie := do(t, app, http.MethodPost, "/flash", nil)

	resp, _ := do(t, app, http.MethodGet, "/flash", cookie)
	assert.Equal(t, "Welcome back", body(t, resp))

	resp, _ = do(t, app, http.MethodGet, "/flash", cookie)
	assert.Empty(t, body(t, resp))
}
