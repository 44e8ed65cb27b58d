package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultShutdownTimeout = 10 * time.Second
)

type Config struct {
	HTTPAddr        string
	AuthAPIURL      string
	AuthAPITimeout  time.Duration
	MetricsAddr     string
	DevAuthEnabled  bool
	HTMXScriptURL   string
	ShutdownTimeout time.Duration
}

type LoadOptions struct {
	RequireAuthAPIURL bool
}

// Load reads the configuration of the serve command.
func Load() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireAuthAPIURL: true})
}

// LoadOptionalAPI reads the configuration without requiring AUTH_API_URL,
// for commands that accept it as a flag.
func LoadOptionalAPI() (Config, error) {
	return LoadWithOptions(LoadOptions{RequireAuthAPIURL: false})
}

func LoadWithOptions(opts LoadOptions) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, err
		}
	}

	cfg := Config{
		HTTPAddr:        getenvDefault("HTTP_ADDR", defaultHTTPAddr),
		AuthAPIURL:      strings.TrimSpace(os.Getenv("AUTH_API_URL")),
		AuthAPITimeout:  getenvDurationDefault("AUTH_API_TIMEOUT", 0),
		MetricsAddr:     strings.TrimSpace(os.Getenv("METRICS_ADDR")),
		DevAuthEnabled:  getenvBoolDefault("DEV_AUTH_ENABLED", false),
		HTMXScriptURL:   strings.TrimSpace(os.Getenv("HTMX_SCRIPT_URL")),
		ShutdownTimeout: getenvDurationDefault("SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	if opts.RequireAuthAPIURL && cfg.AuthAPIURL == "" {
		return cfg, errors.New("AUTH_API_URL is required")
	}

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvDurationDefault(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return def
	}
	return d
}

func getenvBoolDefault(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	switch v {
	case "1":
		return true
	case "0":
		return false
	default:
		return def
	}
}
