// Package config handles configuration for the booking server: defaults,
// an optional .env overlay, environment variables, and command-line flags,
// applied in that order.
package config

import (
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds runtime settings for the booking server.
//
// Fields:
//   - Port: HTTP listen port.
//   - DBPath: SQLite database path. Empty selects the volatile in-memory
//     store; ":memory:" selects SQLite's in-memory database.
//   - AdminUsername/AdminPassword/AdminEmail: the seeded administrator.
//   - MemberUsername/MemberEmail: the seeded family member whose identity
//     unauthenticated user routes act as.
//   - SMTPHost/SMTPPort/SMTPFrom/SMTPPassword: email delivery. Empty host
//     disables email and falls back to log-only notifications.
//   - AppURL: base URL linked from notification emails.
//   - RateLimitRPS/RateLimitBurst: per-IP request throttling.
type Config struct {
	Port   int
	DBPath string

	AdminUsername string
	AdminPassword string
	AdminEmail    string

	MemberUsername string
	MemberEmail    string

	SMTPHost     string
	SMTPPort     string
	SMTPFrom     string
	SMTPPassword string
	AppURL       string

	RateLimitRPS   float64
	RateLimitBurst int
}

// LoadDefaults populates Config with development defaults.
// NOTE: the seed credentials are placeholders; there is no real
// authentication in this system.
func (c *Config) LoadDefaults() {
	c.Port = 8080
	c.DBPath = ""
	c.AdminUsername = "admin"
	c.AdminPassword = "123"
	c.MemberUsername = "Luis Glez"
	c.SMTPPort = "587"
	c.AppURL = "http://localhost:8080"
	c.RateLimitRPS = 5
	c.RateLimitBurst = 10
}

// Load builds a Config by applying defaults, then overlaying values from
// an optional .env file, the environment, and finally command-line flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

// parseEnv overlays .env (when present) and environment variables.
func parseEnv(c *Config) {
	// A missing .env is not an error; the environment still applies.
	_ = godotenv.Load()

	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Port = p
		}
	}
	setString(&c.DBPath, "DB_PATH")
	setString(&c.AdminUsername, "ADMIN_USERNAME")
	setString(&c.AdminPassword, "ADMIN_PASSWORD")
	setString(&c.AdminEmail, "ADMIN_EMAIL")
	setString(&c.MemberUsername, "MEMBER_USERNAME")
	setString(&c.MemberEmail, "MEMBER_EMAIL")
	setString(&c.SMTPHost, "SMTP_HOST")
	setString(&c.SMTPPort, "SMTP_PORT")
	setString(&c.SMTPFrom, "SMTP_FROM")
	setString(&c.SMTPPassword, "SMTP_PASSWORD")
	setString(&c.AppURL, "APP_URL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// parseFlags overlays command-line flags. Flags win over everything.
func parseFlags(c *Config) {
	flag.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	flag.StringVar(&c.DBPath, "db", c.DBPath, "SQLite database path (empty: in-memory store)")
	flag.StringVar(&c.AppURL, "app-url", c.AppURL, "Base URL used in notification emails")
	flag.Parse()
}

// EmailEnabled reports whether SMTP delivery is configured.
func (c *Config) EmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}
