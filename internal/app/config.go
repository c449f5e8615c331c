package app

import (
	"os"
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
)

// Config holds the complete application configuration, loadable from
// environment variables (AJJAWI_ prefix), flags, or YAML config files.
type Config struct {
	Addr             string        `default:"0.0.0.0:8080" usage:"API server listen address"`
	UpstreamURL      string        `usage:"Catalog backend base URL (AJJAWI_UPSTREAM_URL or UPSTREAM_URL)" flag:"upstream-url" validate:"required,url"`
	UpstreamTimeout  time.Duration `default:"30s" usage:"Upstream request timeout" flag:"upstream-timeout"`
	RedisURL         string        `default:"" usage:"Redis URL for the response cache; empty disables caching" flag:"redis-url"`
	CacheTTL         time.Duration `default:"30s" usage:"Response cache entry lifetime" flag:"cache-ttl"`
	BrandSort        string        `default:"priority" usage:"Brand directory ordering (priority | others-last)" flag:"brand-sort" validate:"oneof=priority others-last"`
	GroupNewProducts bool          `default:"false" usage:"Split product listings into new and regular groups" flag:"group-new-products"`
	RateLimit        RateLimitConfig
	CORS             CORSConfig
	Graceful         GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// LoadConfig loads configuration from environment variables, YAML config
// files, and platform defaults, then validates the result.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "AJJAWI",
		Files:     []string{"config.yaml", "/etc/ajjawi/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyPlatformDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "validate config")
	}

	return &cfg, nil
}

// applyPlatformDefaults maps platform-provided environment variables
// (Railway, Render, etc.) that use standard names like PORT to the
// application's AJJAWI_-prefixed configuration.
func (c *Config) applyPlatformDefaults() {
	if c.UpstreamURL == "" {
		if v := os.Getenv("UPSTREAM_URL"); v != "" {
			c.UpstreamURL = v
		}
	}
	if port := os.Getenv("PORT"); port != "" && c.Addr == "0.0.0.0:8080" {
		c.Addr = "0.0.0.0:" + port
	}
}
