package services

import (
	"context"
	"crypto/subtle"
	"fmt"

	"travel-itinerary-service/internal/models"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// OAuthConfig configures Google sign-in.
type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint defaults to google.Endpoint.
	Endpoint oauth2.Endpoint
}

// OAuthService runs the authorization-code flow against Google and returns the
// signed-in profile.
type OAuthService struct {
	config      *oauth2.Config
	profileOpts []option.ClientOption
}

// NewOAuthService builds the service. profileOpts are appended to the options of
// the userinfo client.
func NewOAuthService(cfg OAuthConfig, profileOpts ...option.ClientOption) *OAuthService {
	endpoint := cfg.Endpoint
	if endpoint.AuthURL == "" && endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &OAuthService{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"openid", "email", "profile"},
		},
		profileOpts: profileOpts,
	}
}

// BeginAuthorization returns a fresh state token and the consent page URL
// carrying it. The caller keeps the state until the callback.
func (s *OAuthService) BeginAuthorization() (state, authURL string) {
	state = uuid.NewString()
	return state, s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// CompleteAuthorization checks the callback state against the one issued by
// BeginAuthorization, exchanges the code and fetches the profile. Every
// failure is reported as models.ErrOAuthExchange.
func (s *OAuthService) CompleteAuthorization(ctx context.Context, expectedState, state, code string) (models.UserRecord, error) {
	if expectedState == "" || subtle.ConstantTimeCompare([]byte(expectedState), []byte(state)) != 1 {
		return models.UserRecord{}, fmt.Errorf("%w: state mismatch", models.ErrOAuthExchange)
	}
	if code == "" {
		return models.UserRecord{}, fmt.Errorf("%w: missing authorization code", models.ErrOAuthExchange)
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: token exchange: %w", models.ErrOAuthExchange, err)
	}

	opts := append([]option.ClientOption{option.WithTokenSource(s.config.TokenSource(ctx, token))}, s.profileOpts...)
	svc, err := oauth2api.NewService(ctx, opts...)
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: userinfo client: %w", models.ErrOAuthExchange, err)
	}

	info, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return models.UserRecord{}, fmt.Errorf("%w: fetch profile: %w", models.ErrOAuthExchange, err)
	}
	if info.Email == "" {
		return models.UserRecord{}, fmt.Errorf("%w: profile has no email", models.ErrOAuthExchange)
	}

	return models.UserRecord{ID: info.Id, Email: info.Email, DisplayName: info.Name}, nil
}
