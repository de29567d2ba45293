package app

import (
	"context"
	"fmt"

	"travel-itinerary-service/internal/config"
	"travel-itinerary-service/internal/intake"
	"travel-itinerary-service/internal/prompt"
	"travel-itinerary-service/internal/services"
	"travel-itinerary-service/internal/sessions"

	"go.uber.org/zap"
)

// Wire builds production dependencies from configuration.
func Wire(ctx context.Context, cfg config.Config, log *zap.Logger) (Deps, error) {
	policy, err := intake.ParsePolicy(cfg.Intake.DestinationPolicy)
	if err != nil {
		return Deps{}, err
	}

	builder, err := prompt.NewBuilder(cfg.Prompt.TemplateFile, cfg.Prompt.Currency)
	if err != nil {
		return Deps{}, err
	}

	aiService, err := services.NewAIService(ctx, services.AIServiceConfig{
		APIKey:           cfg.GenAI.APIKey,
		Model:            cfg.GenAI.Model,
		Timeout:          cfg.GenAI.Timeout,
		SystemPromptFile: cfg.GenAI.SystemPromptFile,
		Grounding:        cfg.GenAI.Grounding,
		BaseURL:          cfg.GenAI.BaseURL,
	})
	if err != nil {
		return Deps{}, fmt.Errorf("AI service initialization failed: %w", err)
	}

	var identity services.IdentityProvider
	switch cfg.Identity.Backend {
	case "memory":
		log.Warn("using the in-memory identity store; accounts are lost on restart")
		identity = services.NewMemoryIdentityProvider()
	default:
		identity, err = services.NewToolkitIdentityProvider(ctx, services.ToolkitConfig{
			APIKey:          cfg.Identity.APIKey,
			CredentialsFile: cfg.Identity.CredentialsFile,
			Timeout:         cfg.Identity.Timeout,
		})
		if err != nil {
			return Deps{}, fmt.Errorf("identity provider initialization failed: %w", err)
		}
	}

	var oauth *services.OAuthService
	if g := cfg.OAuth.Google; g.Enabled() {
		oauth = services.NewOAuthService(services.OAuthConfig{
			ClientID:     g.ClientID,
			ClientSecret: g.ClientSecret,
			RedirectURL:  g.RedirectURL,
		})
	} else {
		log.Info("google sign-in disabled: oauth.google.client_id or client_secret not set")
	}

	return Deps{
		Log:         log,
		Identity:    identity,
		OAuth:       oauth,
		Itineraries: services.NewItineraryService(builder, aiService, cfg.GenAI.Model, cfg.Render.Markdown, log),
		Decoder:     intake.NewDecoder(policy, log),
		Sessions: sessions.NewManager(sessions.Config{
			Expiration:   cfg.Session.Expiration,
			CookieSecure: cfg.Server.CookieSecure,
		}),
		CSRF:         cfg.CSRF.Enabled,
		CookieSecure: cfg.Server.CookieSecure,
	}, nil
}
