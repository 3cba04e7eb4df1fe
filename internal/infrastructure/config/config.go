package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	Log     LogConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Ebay    EbayConfig
	Comps   CompsConfig
	Upload  UploadConfig
	Draft   DraftConfig
	Storage StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxHeaderBytes   int
	// MaxBodySize bounds request bodies; image batches arrive as uploads so
	// the ceiling is generous
	MaxBodySize      int64
	CORSAllowOrigins []string
	CORSAllowMethods []string
	CORSAllowHeaders []string
	TrustedProxies   []string

	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// EbayConfig holds marketplace API credentials and endpoints
type EbayConfig struct {
	AppID          string
	DevID          string
	CertID         string
	AuthToken      string
	OAuthToken     string
	SiteID         string
	MarketplaceID  string
	Sandbox        bool
	TimeoutSeconds int
	// PostalCode is the item location reported on listings
	PostalCode string
	// DispatchDays is the stated handling time
	DispatchDays int
}

// CompsConfig holds comparable-sales lookup settings
type CompsConfig struct {
	// MaxResults caps each of the sold and active pools
	MaxResults int
	// Timeout bounds one full comps lookup
	Timeout time.Duration
}

// UploadConfig holds photo upload settings
type UploadConfig struct {
	Concurrency   int
	RetryAttempts int
	RetryDelay    time.Duration
}

// DraftConfig holds draft session settings
type DraftConfig struct {
	// StagingDir is where uploaded image batches are staged on disk
	StagingDir string
	// TTL is the Redis backstop expiry for drafts
	TTL time.Duration
	// SweepInterval is how often the sweeper scans for idle drafts
	SweepInterval time.Duration
	// MaxIdle is how long a draft may sit untouched before it is swept
	MaxIdle time.Duration
}

// StorageConfig holds export archive storage settings
type StorageConfig struct {
	Enabled           bool
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	UsePathStyle      bool
	PresignExpiration time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with RESALE_ prefix (e.g., RESALE_EBAY_CERT_ID)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("./backend")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("RESALE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:   v.GetInt("http.max_header_bytes"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			CORSAllowMethods: v.GetStringSlice("http.cors_allow_methods"),
			CORSAllowHeaders: v.GetStringSlice("http.cors_allow_headers"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),

			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Ebay: EbayConfig{
			AppID:          v.GetString("ebay.app_id"),
			DevID:          v.GetString("ebay.dev_id"),
			CertID:         v.GetString("ebay.cert_id"),
			AuthToken:      v.GetString("ebay.auth_token"),
			OAuthToken:     v.GetString("ebay.oauth_token"),
			SiteID:         v.GetString("ebay.site_id"),
			MarketplaceID:  v.GetString("ebay.marketplace_id"),
			Sandbox:        v.GetBool("ebay.sandbox"),
			TimeoutSeconds: v.GetInt("ebay.timeout_seconds"),
			PostalCode:     v.GetString("ebay.postal_code"),
			DispatchDays:   v.GetInt("ebay.dispatch_days"),
		},
		Comps: CompsConfig{
			MaxResults: v.GetInt("comps.max_results"),
			Timeout:    v.GetDuration("comps.timeout"),
		},
		Upload: UploadConfig{
			Concurrency:   v.GetInt("upload.concurrency"),
			RetryAttempts: v.GetInt("upload.retry_attempts"),
			RetryDelay:    v.GetDuration("upload.retry_delay"),
		},
		Draft: DraftConfig{
			StagingDir:    v.GetString("draft.staging_dir"),
			TTL:           v.GetDuration("draft.ttl"),
			SweepInterval: v.GetDuration("draft.sweep_interval"),
			MaxIdle:       v.GetDuration("draft.max_idle"),
		},
		Storage: StorageConfig{
			Enabled:           v.GetBool("storage.enabled"),
			Endpoint:          v.GetString("storage.endpoint"),
			Region:            v.GetString("storage.region"),
			Bucket:            v.GetString("storage.bucket"),
			AccessKey:         v.GetString("storage.access_key"),
			SecretKey:         v.GetString("storage.secret_key"),
			UseSSL:            v.GetBool("storage.use_ssl"),
			UsePathStyle:      v.GetBool("storage.use_path_style"),
			PresignExpiration: v.GetDuration("storage.presign_expiration"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "resale-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 30 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		// Publishes wait on picture uploads, so writes get a long leash
		cfg.HTTP.WriteTimeout = 120 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 20 // 64MB, a full image batch
	}
	// NOTE: CORS origins are intentionally not given a default fallback to "*".
	// An empty list means no cross-origin requests are allowed until explicitly
	// configured.
	if len(cfg.HTTP.CORSAllowMethods) == 0 {
		cfg.HTTP.CORSAllowMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
	}
	if len(cfg.HTTP.CORSAllowHeaders) == 0 {
		cfg.HTTP.CORSAllowHeaders = []string{"Content-Type", "Authorization", "X-Request-ID"}
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 120
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Ebay.SiteID == "" {
		cfg.Ebay.SiteID = "0"
	}
	if cfg.Ebay.MarketplaceID == "" {
		cfg.Ebay.MarketplaceID = "EBAY_US"
	}
	if cfg.Ebay.TimeoutSeconds == 0 {
		cfg.Ebay.TimeoutSeconds = 60
	}
	if cfg.Ebay.DispatchDays == 0 {
		cfg.Ebay.DispatchDays = 2
	}
	if cfg.Comps.MaxResults == 0 {
		cfg.Comps.MaxResults = 50
	}
	if cfg.Comps.Timeout == 0 {
		cfg.Comps.Timeout = 20 * time.Second
	}
	if cfg.Upload.Concurrency == 0 {
		cfg.Upload.Concurrency = 12
	}
	if cfg.Upload.RetryAttempts == 0 {
		cfg.Upload.RetryAttempts = 3
	}
	if cfg.Upload.RetryDelay == 0 {
		cfg.Upload.RetryDelay = time.Second
	}
	if cfg.Draft.StagingDir == "" {
		cfg.Draft.StagingDir = "/tmp/resale-staging"
	}
	if cfg.Draft.TTL == 0 {
		cfg.Draft.TTL = 24 * time.Hour
	}
	if cfg.Draft.SweepInterval == 0 {
		cfg.Draft.SweepInterval = 5 * time.Minute
	}
	if cfg.Draft.MaxIdle == 0 {
		cfg.Draft.MaxIdle = time.Hour
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
	if cfg.Storage.PresignExpiration == 0 {
		cfg.Storage.PresignExpiration = 15 * time.Minute
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c.Comps.MaxResults < 1 || c.Comps.MaxResults > 50 {
		return fmt.Errorf("comps.max_results must be between 1 and 50, got %d", c.Comps.MaxResults)
	}
	if c.Upload.Concurrency < 1 || c.Upload.Concurrency > 12 {
		return fmt.Errorf("upload.concurrency must be between 1 and 12, got %d", c.Upload.Concurrency)
	}
	if c.Draft.MaxIdle < time.Minute {
		return fmt.Errorf("draft.max_idle must be at least one minute")
	}

	// Production-specific validations
	if c.App.Env == "production" {
		if c.Ebay.AppID == "" || c.Ebay.DevID == "" || c.Ebay.CertID == "" {
			return fmt.Errorf("ebay credentials (app_id, dev_id, cert_id) are required in production")
		}
		if c.Ebay.AuthToken == "" {
			return fmt.Errorf("ebay.auth_token is required in production")
		}
		if c.Ebay.Sandbox {
			return fmt.Errorf("ebay.sandbox must be false in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
		if c.Storage.Enabled && (c.Storage.AccessKey == "" || c.Storage.SecretKey == "") {
			return fmt.Errorf("storage credentials are required when storage is enabled in production")
		}
	}

	return nil
}
