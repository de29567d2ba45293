package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"travel-itinerary-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/option"
)

func TestMemoryIdentityProvider(t *testing.T) {
	ctx := context.Background()
	p := NewMemoryIdentityProvider()
	p.cost = bcrypt.MinCost

	created, err := p.CreateUser(ctx, models.NewUser{Name: "Meera", Email: "Meera@Example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "meera@example.com", created.Email)
	assert.Equal(t, "Meera", created.DisplayName)

	found, err := p.FindUserByEmail(ctx, "meera@example.com")
	require.NoError(t, err)
	assert.Equal(t, created, found)

	verified, err := p.VerifyCredentials(ctx, " MEERA@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, created.ID, verified.ID)

	_, err = p.VerifyCredentials(ctx, "meera@example.com", "wrong-password")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = p.VerifyCredentials(ctx, "nobody@example.com", "correct-horse")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = p.FindUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = p.CreateUser(ctx, models.NewUser{Name: "Meera", Email: "meera@example.com", Password: "another-one"})
	assert.ErrorIs(t, err, models.ErrUserExists)

	_, err = p.CreateUser(ctx, models.NewUser{Name: "Short", Email: "short@example.com", Password: "abc"})
	assert.ErrorIs(t, err, models.ErrWeakPassword)
}

func TestMemoryIdentityProviderConcurrentSignup(t *testing.T) {
	p := NewMemoryIdentityProvider()
	p.cost = bcrypt.MinCost

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.CreateUser(context.Background(), models.NewUser{Name: "Dup", Email: "dup@example.com", Password: "password123"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok int
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, models.ErrUserExists)
	}
	assert.Equal(t, 1, ok)
}

type toolkitAccount struct {
	id, email, password, name string
}

// fakeToolkit emulates the relyingparty endpoints of Identity Toolkit.
func fakeToolkit(t *testing.T, accounts map[string]toolkitAccount) *httptest.Server {
	t.Helper()
	var mu sync.Mutex

	fail := func(w http.ResponseWriter, status int, code string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error":{"code":%d,"message":%q,"errors":[{"message":%q,"domain":"global","reason":"invalid"}]}}`, status, code, code)
	}
	reply := func(w http.ResponseWriter, body any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email       any    `json:"email"`
			Password    string `json:"password"`
			DisplayName string `json:"displayName"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)

		mu.Lock()
		defer mu.Unlock()

		switch {
		case strings.HasSuffix(r.URL.Path, "verifyPassword"):
			email, _ := body.Email.(string)
			acct, ok := accounts[email]
			if !ok {
				fail(w, http.StatusBadRequest, "EMAIL_NOT_FOUND")
				return
			}
			if acct.password != body.Password {
				fail(w, http.StatusBadRequest, "INVALID_PASSWORD")
				return
			}
			reply(w, map[string]any{"localId": acct.id, "email": acct.email, "displayName": acct.name, "idToken": "tok"})

		case strings.HasSuffix(r.URL.Path, "signupNewUser"):
			email, _ := body.Email.(string)
			if _, exists := accounts[email]; exists {
				fail(w, http.StatusBadRequest, "EMAIL_EXISTS")
				return
			}
			if len(body.Password) < 6 {
				fail(w, http.StatusBadRequest, "WEAK_PASSWORD : Password should be at least 6 characters")
				return
			}
			accounts[email] = toolkitAccount{id: "uid-" + email, email: email, password: body.Password, name: body.DisplayName}
			reply(w, map[string]any{"localId": "uid-" + email, "email": email})

		case strings.HasSuffix(r.URL.Path, "getAccountInfo"):
			emails, _ := body.Email.([]any)
			users := []map[string]any{}
			for _, e := range emails {
				if acct, ok := accounts[fmt.Sprint(e)]; ok {
					users = append(users, map[string]any{"localId": acct.id, "email": acct.email, "displayName": acct.name})
				}
			}
			if len(users) == 0 {
				reply(w, map[string]any{"kind": "identitytoolkit#GetAccountInfoResponse"})
				return
			}
			reply(w, map[string]any{"users": users})

		default:
			fail(w, http.StatusInternalServerError, "INTERNAL")
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestToolkit(t *testing.T, srv *httptest.Server) *ToolkitIdentityProvider {
	t.Helper()
	p, err := NewToolkitIdentityProvider(context.Background(),
		ToolkitConfig{APIKey: "test-key", Timeout: 5 * time.Second},
		option.WithEndpoint(srv.URL+"/"), option.WithHTTPClient(srv.Client()))
	require.NoError(t, err)
	return p
}

func TestToolkitIdentityProvider(t *testing.T) {
	ctx := context.Background()
	accounts := map[string]toolkitAccount{
		"ravi@example.com": {id: "uid-ravi", email: "ravi@example.com", password: "s3cret-pass", name: "Ravi"},
	}
	p := newTestToolkit(t, fakeToolkit(t, accounts))

	user, err := p.VerifyCredentials(ctx, "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, models.UserRecord{ID: "uid-ravi", Email: "ravi@example.com", DisplayName: "Ravi"}, user)

	_, err = p.VerifyCredentials(ctx, "ravi@example.com", "nope")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)

	_, err = p.VerifyCredentials(ctx, "ghost@example.com", "whatever")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	created, err := p.CreateUser(ctx, models.NewUser{Name: "Anu", Email: "anu@example.com", Password: "long-enough"})
	require.NoError(t, err)
	assert.Equal(t, "uid-anu@example.com", created.ID)
	assert.Equal(t, "Anu", created.DisplayName)

	_, err = p.CreateUser(ctx, models.NewUser{Name: "Anu", Email: "anu@example.com", Password: "long-enough"})
	assert.ErrorIs(t, err, models.ErrUserExists)

	_, err = p.CreateUser(ctx, models.NewUser{Name: "Tiny", Email: "tiny@example.com", Password: "abc"})
	assert.ErrorIs(t, err, models.ErrWeakPassword)

	found, err := p.FindUserByEmail(ctx, "ravi@example.com")
	require.NoError(t, err)
	assert.Equal(t, "uid-ravi", found.ID)

	_, err = p.FindUserByEmail(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestToolkitIdentityProviderUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"error":{"code":503,"message":"backend error"}}`)
	}))
	t.Cleanup(srv.Close)

	p := newTestToolkit(t, srv)
	_, err := p.VerifyCredentials(context.Background(), "ravi@example.com", "pass")
	assert.ErrorIs(t, err, models.ErrIdentityUnavailable)
}
