// Package config reads the server settings from the environment. A .env
// file in the working directory is loaded first by the binary.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fjvico/homepage/internal/identity"
	"github.com/fjvico/homepage/internal/loader"
)

type Config struct {
	Port    string
	GinMode string
	Debug   bool

	// LangDir is a directory holding lang/<code>.txt; empty means the
	// files embedded in the binary.
	LangDir string
	// LangBaseURL, when set, fetches language files from a remote site.
	LangBaseURL  string
	FetchTimeout time.Duration

	DefaultLang string
	Languages   []string
	// Negotiate picks the first language from Accept-Language when the
	// visitor has not chosen one.
	Negotiate bool

	Email identity.Email

	DBPath         string
	TrackVisitors  bool
	AdminUsername  string
	AdminPassword  string
	AdminTokenTTL  time.Duration
	JWTSecret      string
	// CookieSecure marks the admin cookie Secure. Browsers drop such
	// cookies over plain HTTP, so turn it off when not behind TLS.
	CookieSecure   bool
	CORSOrigins    []string
	TrustedProxies []string
}

// Load reads the environment and applies defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:        getenv("PORT", "8080"),
		GinMode:     getenv("GIN_MODE", "release"),
		Debug:       getbool("HOMEPAGE_DEBUG", false),
		LangDir:     os.Getenv("HOMEPAGE_LANG_DIR"),
		LangBaseURL: os.Getenv("HOMEPAGE_LANG_URL"),
		DefaultLang: getenv("HOMEPAGE_DEFAULT_LANG", "es"),
		Languages:   getlist("HOMEPAGE_LANGUAGES", []string{"es", "en"}),
		Negotiate:   getbool("HOMEPAGE_NEGOTIATE", false),
		Email: identity.Email{
			User:   getenv("EMAIL_USER", identity.Default.User),
			Domain: getenv("EMAIL_DOMAIN", identity.Default.Domain),
			TLD:    getenv("EMAIL_TLD", identity.Default.TLD),
		},
		DBPath:         getenv("DB_PATH", "homepage.db"),
		TrackVisitors:  getbool("TRACK_VISITORS", true),
		AdminUsername:  os.Getenv("ADMIN_USERNAME"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		CORSOrigins:    getlist("CORS_ORIGINS", []string{"*"}),
		TrustedProxies: getlist("TRUSTED_PROXIES", nil),
	}

	var err error
	if cfg.FetchTimeout, err = getduration("HOMEPAGE_FETCH_TIMEOUT", 0); err != nil {
		return Config{}, err
	}
	if cfg.AdminTokenTTL, err = getduration("ADMIN_TOKEN_TTL", 24*time.Hour); err != nil {
		return Config{}, err
	}
	cfg.CookieSecure = getbool("COOKIE_SECURE", !cfg.Debug)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Port) == "" {
		return fmt.Errorf("config missing port")
	}
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		return fmt.Errorf("config port %q: %w", cfg.Port, err)
	}
	if cfg.LangDir != "" && cfg.LangBaseURL != "" {
		return fmt.Errorf("HOMEPAGE_LANG_DIR and HOMEPAGE_LANG_URL are mutually exclusive")
	}
	if len(cfg.Languages) == 0 {
		return fmt.Errorf("config lists no languages")
	}
	for i, code := range cfg.Languages {
		if err := loader.ValidCode(code); err != nil {
			return fmt.Errorf("language[%d]: %w", i, err)
		}
	}
	if !cfg.Supports(cfg.DefaultLang) {
		return fmt.Errorf("default language %q is not in %v", cfg.DefaultLang, cfg.Languages)
	}
	if err := cfg.Email.Validate(); err != nil {
		return err
	}
	return nil
}

// Supports reports whether code is one of the configured languages.
func (c Config) Supports(code string) bool {
	for _, l := range c.Languages {
		if l == code {
			return true
		}
	}
	return false
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getlist(key string, def []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getduration(key string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config %s: %w", key, err)
	}
	return d, nil
}
