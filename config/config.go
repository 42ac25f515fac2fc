package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Shopify ShopifyConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	Search  SearchConfig
	Summary SummaryConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ShopifyConfig holds Storefront API configuration. Both fields are
// optional: without them the service runs on the bundled catalog alone.
type ShopifyConfig struct {
	Domain          string        `mapstructure:"domain"`
	StorefrontToken string        `mapstructure:"storefront_token"`
	Timeout         time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether the remote storefront backend can be used.
func (c ShopifyConfig) Enabled() bool {
	return c.Domain != "" && c.StorefrontToken != ""
}

// CatalogConfig selects the fallback dataset. Path, when set, replaces the
// bundled catalog with an external JSON file of the same shape.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// SearchConfig holds pipeline tuning knobs
type SearchConfig struct {
	RetrievalTimeout time.Duration `mapstructure:"retrieval_timeout"`
}

// SummaryConfig holds the generative summary path configuration. Optional:
// without an API key only the deterministic summary is available.
type SummaryConfig struct {
	OpenAIAPIKey string        `mapstructure:"openai_api_key"`
	Model        string        `mapstructure:"model"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/tailord/")

	// Environment variable settings (TAILORD_SERVER_PORT -> server.port)
	v.SetEnvPrefix("TAILORD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Shopify defaults. Empty-string defaults register the credential keys
	// so AutomaticEnv picks them up during Unmarshal.
	v.SetDefault("shopify.domain", "")
	v.SetDefault("shopify.storefront_token", "")
	v.SetDefault("shopify.timeout", "10s")

	// Catalog defaults (empty path means the bundled dataset)
	v.SetDefault("catalog.path", "")

	// Cache defaults
	v.SetDefault("cache.ttl", "10m")

	// Search defaults
	v.SetDefault("search.retrieval_timeout", "8s")

	// Summary defaults
	v.SetDefault("summary.openai_api_key", "")
	v.SetDefault("summary.model", "gpt-4o-mini")
	v.SetDefault("summary.timeout", "15s")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}

	// Storefront credentials only work as a pair.
	if (config.Shopify.Domain == "") != (config.Shopify.StorefrontToken == "") {
		return fmt.Errorf("shopify domain and storefront token must be set together (set TAILORD_SHOPIFY_DOMAIN and TAILORD_SHOPIFY_STOREFRONT_TOKEN)")
	}

	if config.Cache.TTL < 0 {
		return fmt.Errorf("cache TTL must not be negative, got: %s", config.Cache.TTL)
	}

	return nil
}
