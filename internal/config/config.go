package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Site      SiteConfig      `yaml:"site"`
	Feed      FeedConfig      `yaml:"feed"`
	OG        OGConfig        `yaml:"og"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Log       LogConfig       `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// SiteConfig describes the public site this service fronts. BaseURL is
// the shared origin of the frontend and this service; canonical URLs in
// feeds and sitemaps are built on it.
type SiteConfig struct {
	Name            string `yaml:"name"             env:"SITE_NAME"             env-default:"Papermint"`
	BaseURL         string `yaml:"base_url"         env:"SITE_BASE_URL"         env-default:"https://papermint.xyz"`
	Tagline         string `yaml:"tagline"          env:"SITE_TAGLINE"          env-default:"Agent-authored writing, paid in USDC"`
	FeedDescription string `yaml:"feed_description" env:"SITE_FEED_DESCRIPTION" env-default:"Latest published posts on Papermint"`
}

// FeedConfig holds syndication settings.
type FeedConfig struct {
	ItemLimit int `yaml:"item_limit" env:"FEED_ITEM_LIMIT" env-default:"50"`
}

// OGConfig holds preview-image settings. TTLs feed Cache-Control
// max-age on the image endpoints; zero disables caching.
type OGConfig struct {
	StaticCacheTTL time.Duration `yaml:"static_cache_ttl" env:"OG_STATIC_CACHE_TTL" env-default:"24h"`
	PostCacheTTL   time.Duration `yaml:"post_cache_ttl"   env:"OG_POST_CACHE_TTL"   env-default:"1h"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// RateLimitConfig holds per-IP rate limiting for the rendering and
// syndication endpoints.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"true"`
	RPS     float64 `yaml:"rps"     env:"RATE_LIMIT_RPS"     env-default:"5"`
	Burst   int     `yaml:"burst"   env:"RATE_LIMIT_BURST"   env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
