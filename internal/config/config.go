// Package config loads service settings from defaults, an optional config file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Session  SessionConfig  `mapstructure:"session"`
	CSRF     CSRFConfig     `mapstructure:"csrf"`
	GenAI    GenAIConfig    `mapstructure:"genai"`
	Prompt   PromptConfig   `mapstructure:"prompt"`
	Render   RenderConfig   `mapstructure:"render"`
	Identity IdentityConfig `mapstructure:"identity"`
	OAuth    OAuthConfig    `mapstructure:"oauth"`
	Intake   IntakeConfig   `mapstructure:"intake"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Addr         string `mapstructure:"addr"`
	CookieSecure bool   `mapstructure:"cookie_secure"`
}

type SessionConfig struct {
	Expiration time.Duration `mapstructure:"expiration"`
}

type CSRFConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type GenAIConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	Model            string        `mapstructure:"model"`
	Timeout          time.Duration `mapstructure:"timeout"`
	SystemPromptFile string        `mapstructure:"system_prompt_file"`
	Grounding        bool          `mapstructure:"grounding"`
	BaseURL          string        `mapstructure:"base_url"`
}

type PromptConfig struct {
	TemplateFile string `mapstructure:"template_file"`
	Currency     string `mapstructure:"currency"`
}

type RenderConfig struct {
	Markdown bool `mapstructure:"markdown"`
}

type IdentityConfig struct {
	// Backend is "toolkit" for Google Identity Toolkit or "memory" for the
	// in-process password store.
	Backend         string        `mapstructure:"backend"`
	APIKey          string        `mapstructure:"api_key"`
	CredentialsFile string        `mapstructure:"credentials_file"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

type OAuthConfig struct {
	Google GoogleOAuthConfig `mapstructure:"google"`
}

type GoogleOAuthConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	RedirectURL  string `mapstructure:"redirect_url"`
}

// Enabled reports whether Google sign-in is configured.
func (g GoogleOAuthConfig) Enabled() bool {
	return g.ClientID != "" && g.ClientSecret != ""
}

type IntakeConfig struct {
	DestinationPolicy string `mapstructure:"destination_policy"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

// legacyEnv maps config keys to the environment variable names earlier
// deployments used.
var legacyEnv = map[string][]string{
	"genai.api_key":              {"API_KEY", "GEMINI_API_KEY"},
	"genai.model":                {"MODEL_NAME"},
	"identity.api_key":           {"FIREBASE_API_KEY"},
	"identity.credentials_file":  {"FIREBASE_CREDENTIALS"},
	"oauth.google.client_id":     {"GOOGLE_CLIENT_ID"},
	"oauth.google.client_secret": {"GOOGLE_CLIENT_SECRET"},
	"oauth.google.redirect_url":  {"GOOGLE_REDIRECT_URL"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":9000")
	v.SetDefault("server.cookie_secure", false)
	v.SetDefault("session.expiration", time.Hour)
	v.SetDefault("csrf.enabled", true)
	v.SetDefault("genai.model", "gemini-2.0-flash")
	v.SetDefault("genai.timeout", time.Minute)
	v.SetDefault("genai.grounding", false)
	v.SetDefault("genai.system_prompt_file", "")
	v.SetDefault("genai.base_url", "")
	v.SetDefault("prompt.template_file", "")
	v.SetDefault("prompt.currency", "INR")
	v.SetDefault("render.markdown", true)
	v.SetDefault("identity.backend", "toolkit")
	v.SetDefault("identity.timeout", 10*time.Second)
	v.SetDefault("oauth.google.redirect_url", "http://localhost:9000/google_login/google/authorized")
	v.SetDefault("intake.destination_policy", "tolerate")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.development", false)
}

// Load reads configuration. path may be empty, in which case only defaults and
// environment variables apply.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range legacyEnv {
		// The dotted key's own env form keeps precedence.
		envs := append([]string{strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return Config{}, err
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that would otherwise fail on the first request.
func (c Config) Validate() error {
	switch c.Identity.Backend {
	case "memory":
	case "toolkit":
		if c.Identity.APIKey == "" {
			return errors.New("identity.api_key is required for the toolkit backend")
		}
	default:
		return fmt.Errorf("unknown identity backend %q", c.Identity.Backend)
	}
	if c.GenAI.Model == "" {
		return errors.New("genai.model must not be empty")
	}
	return nil
}
