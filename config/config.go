package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Fetch   FetchConfig
	Rewrite RewriteConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 3001
	Mode string // "debug", "release", "test"; default: "release"

	// ShutdownTimeout bounds how long in-flight requests may run after a
	// termination signal.
	ShutdownTimeout time.Duration // default: 5s
}

// FetchConfig controls the outbound request to the target page.
type FetchConfig struct {
	// Timeout is the whole-request deadline. Zero keeps the http.Client
	// default, which is no deadline at all.
	Timeout time.Duration // default: 0

	// MaxBodyBytes caps how much of the upstream body is read.
	MaxBodyBytes int64 // default: 10 MiB

	// UserAgent is sent on every outbound request.
	UserAgent string
}

// RewriteConfig controls the text substitution pass.
type RewriteConfig struct {
	// SourceTerm is replaced by ReplacementTerm in every text node.
	SourceTerm      string // default: "Yale"
	ReplacementTerm string // default: "Fale"

	// CaseVariants also rewrites the all-upper and all-lower spellings.
	CaseVariants bool // default: false

	// SkipSelector matches elements whose contents are never rewritten.
	SkipSelector string // default: "script, style, noscript, textarea, template"

	// RulesFile optionally names a YAML file with extra match/replace pairs.
	RulesFile string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// DefaultUserAgent is a current desktop Chrome UA string.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            envOr("FALE_HOST", "0.0.0.0"),
			Port:            envIntOr("FALE_PORT", 3001),
			Mode:            envOr("FALE_MODE", "release"),
			ShutdownTimeout: envDurationOr("FALE_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Fetch: FetchConfig{
			Timeout:      envDurationOr("FALE_FETCH_TIMEOUT", 0),
			MaxBodyBytes: int64(envIntOr("FALE_MAX_BODY_BYTES", 10<<20)),
			UserAgent:    envOr("FALE_USER_AGENT", DefaultUserAgent),
		},
		Rewrite: RewriteConfig{
			SourceTerm:      envOr("FALE_SOURCE_TERM", "Yale"),
			ReplacementTerm: envOr("FALE_REPLACEMENT_TERM", "Fale"),
			CaseVariants:    envBoolOr("FALE_CASE_VARIANTS", false),
			SkipSelector:    envOr("FALE_SKIP_SELECTOR", "script, style, noscript, textarea, template"),
			RulesFile:       strings.TrimSpace(os.Getenv("FALE_RULES_FILE")),
		},
		Log: LogConfig{
			Level:  envOr("FALE_LOG_LEVEL", "info"),
			Format: envOr("FALE_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
