package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIBaseURL     string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api/v1"`
	APITimeout     time.Duration `envconfig:"API_TIMEOUT" default:"15s"`
	APIRetries     uint64        `envconfig:"API_RETRIES" default:"2"`
	GoogleClientID string        `envconfig:"GOOGLE_CLIENT_ID"`
	AdminEmails    string        `envconfig:"ADMIN_EMAILS"`

	ServerPort     string   `envconfig:"SERVER_PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS"`

	DBUrl string `envconfig:"DATABASE_URL"`

	RedisAddr     string `envconfig:"REDIS_ADDR"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	WorkspaceIdle time.Duration `envconfig:"WORKSPACE_IDLE" default:"30m"`
	MaxWorkspaces int           `envconfig:"MAX_WORKSPACES" default:"10000"`
	CookieName    string        `envconfig:"COOKIE_NAME" default:"salas_sid"`
	CookieSecure  bool          `envconfig:"COOKIE_SECURE" default:"false"`

	Admins *Allowlist `ignored:"true"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.Admins = NewAllowlist(cfg.AdminEmails)

	return &cfg, nil
}

// ReloadAdmins re-reads ADMIN_EMAILS, letting .env values override the
// environment, and swaps the allowlist in place.
func (c *Config) ReloadAdmins() {
	_ = godotenv.Overload()

	c.AdminEmails = os.Getenv("ADMIN_EMAILS")
	c.Admins.Replace(c.AdminEmails)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}
