package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type App struct {
	// HTTP
	Port     string `envconfig:"PORT" default:"5000"`
	GinMode  string `envconfig:"GIN_MODE" default:"debug"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	// DB
	DBDriver string `envconfig:"DB_DRIVER" default:"sqlite"`
	DBDSN    string `envconfig:"DB_DSN" default:"restaurantmenu.db"`
	// Session
	SessionSecret string `envconfig:"SESSION_SECRET"`
	SessionName   string `envconfig:"SESSION_NAME" default:"restaurant_session"`
	// Google
	ClientSecretsFile string `envconfig:"GOOGLE_CLIENT_SECRETS" default:"client_secrets.json"`
	TokenInfoURL      string `envconfig:"GOOGLE_TOKENINFO_URL" default:"https://www.googleapis.com/oauth2/v1/tokeninfo"`
	UserInfoURL       string `envconfig:"GOOGLE_USERINFO_URL" default:"https://www.googleapis.com/oauth2/v1/userinfo"`
	RevokeURL         string `envconfig:"GOOGLE_REVOKE_URL" default:"https://accounts.google.com/o/oauth2/revoke"`
	// Misc
	CORSOrigin     string   `envconfig:"CORS_ORIGIN" default:"*"`
	LoginRateLimit int      `envconfig:"LOGIN_RATE_LIMIT" default:"10"`
	RequestsPerIP  int      `envconfig:"REQUESTS_PER_IP" default:"50"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES" default:"127.0.0.1"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// ValidateServe checks the settings only the web server needs.
func (a App) ValidateServe() error {
	if len(a.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 bytes")
	}
	return nil
}

// OAuthConfig reads Google's client_secrets.json. The redirect URI is
// "postmessage" because the code comes from the browser sign-in button.
func (a App) OAuthConfig() (*oauth2.Config, error) {
	raw, err := os.ReadFile(a.ClientSecretsFile)
	if err != nil {
		return nil, fmt.Errorf("read client secrets: %w", err)
	}
	return ParseClientSecrets(raw)
}

func ParseClientSecrets(raw []byte) (*oauth2.Config, error) {
	cfg, err := google.ConfigFromJSON(raw, "openid", "email", "profile")
	if err != nil {
		return nil, fmt.Errorf("parse client secrets: %w", err)
	}
	cfg.RedirectURL = "postmessage"
	return cfg, nil
}
