package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"travel-itinerary-service/internal/models"

	"google.golang.org/api/googleapi"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// ToolkitConfig configures the Google Identity Toolkit (Firebase Auth) adapter.
type ToolkitConfig struct {
	APIKey string
	// CredentialsFile is a service account key. Looking accounts up by email
	// needs it; without one the API key is used.
	CredentialsFile string
	Timeout         time.Duration
}

// ToolkitIdentityProvider passes account operations through to Identity
// Toolkit and maps its error codes onto the model errors.
type ToolkitIdentityProvider struct {
	public  *identitytoolkit.Service
	admin   *identitytoolkit.Service
	timeout time.Duration
}

// NewToolkitIdentityProvider builds the adapter. extra options are applied to
// every underlying client after the credentials.
func NewToolkitIdentityProvider(ctx context.Context, cfg ToolkitConfig, extra ...option.ClientOption) (*ToolkitIdentityProvider, error) {
	public, err := identitytoolkit.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, extra...)...)
	if err != nil {
		return nil, fmt.Errorf("create identity toolkit client: %w", err)
	}

	admin := public
	if cfg.CredentialsFile != "" {
		admin, err = identitytoolkit.NewService(ctx, append([]option.ClientOption{option.WithCredentialsFile(cfg.CredentialsFile)}, extra...)...)
		if err != nil {
			return nil, fmt.Errorf("create identity toolkit admin client: %w", err)
		}
	}

	return &ToolkitIdentityProvider{public: public, admin: admin, timeout: cfg.Timeout}, nil
}

func (p *ToolkitIdentityProvider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.timeout)
}

func (p *ToolkitIdentityProvider) FindUserByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.admin.Relyingparty.GetAccountInfo(&identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{
		Email: []string{email},
	}).Context(ctx).Do()
	if err != nil {
		return models.UserRecord{}, translateToolkitError(err)
	}
	if len(resp.Users) == 0 || resp.Users[0] == nil {
		return models.UserRecord{}, models.ErrUserNotFound
	}

	u := resp.Users[0]
	return models.UserRecord{ID: u.LocalId, Email: u.Email, DisplayName: u.DisplayName}, nil
}

func (p *ToolkitIdentityProvider) CreateUser(ctx context.Context, nu models.NewUser) (models.UserRecord, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.public.Relyingparty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:       nu.Email,
		Password:    nu.Password,
		DisplayName: nu.Name,
	}).Context(ctx).Do()
	if err != nil {
		return models.UserRecord{}, translateToolkitError(err)
	}

	display := resp.DisplayName
	if display == "" {
		display = nu.Name
	}
	return models.UserRecord{ID: resp.LocalId, Email: resp.Email, DisplayName: display}, nil
}

func (p *ToolkitIdentityProvider) VerifyCredentials(ctx context.Context, email, password string) (models.UserRecord, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	resp, err := p.public.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return models.UserRecord{}, translateToolkitError(err)
	}
	return models.UserRecord{ID: resp.LocalId, Email: resp.Email, DisplayName: resp.DisplayName}, nil
}

// toolkitErrors maps the leading code of an Identity Toolkit error message,
// e.g. "WEAK_PASSWORD : Password should be at least 6 characters".
var toolkitErrors = map[string]error{
	"EMAIL_NOT_FOUND":           models.ErrUserNotFound,
	"USER_NOT_FOUND":            models.ErrUserNotFound,
	"INVALID_PASSWORD":          models.ErrInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS": models.ErrInvalidCredentials,
	"INVALID_EMAIL":             models.ErrInvalidCredentials,
	"MISSING_PASSWORD":          models.ErrInvalidCredentials,
	"USER_DISABLED":             models.ErrUserDisabled,
	"EMAIL_EXISTS":              models.ErrUserExists,
	"WEAK_PASSWORD":             models.ErrWeakPassword,
}

func translateToolkitError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		code := strings.TrimSpace(strings.SplitN(apiErr.Message, ":", 2)[0])
		if mapped, ok := toolkitErrors[code]; ok {
			return mapped
		}
		return fmt.Errorf("%w: %s", models.ErrIdentityUnavailable, apiErr.Message)
	}
	return fmt.Errorf("%w: %w", models.ErrIdentityUnavailable, err)
}
