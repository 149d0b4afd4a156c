package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/shelfwatch/backend/internal/infrastructure/scrape"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Scraper   ScraperConfig
	Overrides OverridesConfig
	Catalog   CatalogConfig
}

// ServerConfig holds catalog API server configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig holds catalog persistence configuration
type StoreConfig struct {
	Driver     string `mapstructure:"driver"` // "memory" or "sqlite"
	SQLitePath string `mapstructure:"sqlite_path"`
}

// ScraperConfig holds scrape-run configuration
type ScraperConfig struct {
	SourceSite   string           `mapstructure:"source_site"`
	URLsFile     string           `mapstructure:"urls_file"`
	UserAgent    string           `mapstructure:"user_agent"`
	PageDelay    time.Duration    `mapstructure:"page_delay"`
	ProductDelay time.Duration    `mapstructure:"product_delay"`
	DryRun       bool             `mapstructure:"dry_run"`
	Debug        bool             `mapstructure:"debug"`
	Selectors    scrape.Selectors `mapstructure:"selectors"`
}

// OverridesConfig points at the operator-curated product override table
type OverridesConfig struct {
	File string `mapstructure:"file"`
}

// CatalogConfig holds the recognized category vocabulary
type CatalogConfig struct {
	ValidCategories []string `mapstructure:"valid_categories"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shelfwatch/")

	// Environment variable settings. The replacer maps nested keys like
	// store.driver to SHELFWATCH_STORE_DRIVER.
	v.SetEnvPrefix("SHELFWATCH")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Store defaults
	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.sqlite_path", "shelfwatch.db")

	// Scraper defaults
	v.SetDefault("scraper.source_site", "paknsave.co.nz")
	v.SetDefault("scraper.urls_file", "urls.txt")
	v.SetDefault("scraper.user_agent", "shelfwatch/1.0")
	v.SetDefault("scraper.page_delay", "11s")
	v.SetDefault("scraper.product_delay", "20ms")
	v.SetDefault("scraper.dry_run", false)
	v.SetDefault("scraper.debug", false)
	v.SetDefault("scraper.selectors.product_card", "div.fs-product-card")
	v.SetDefault("scraper.selectors.name", "h3")
	v.SetDefault("scraper.selectors.size", "p[data-testid=size]")
	v.SetDefault("scraper.selectors.dollars", "p[data-testid=price-dollars]")
	v.SetDefault("scraper.selectors.cents", "p[data-testid=price-cents]")
	v.SetDefault("scraper.selectors.image", "a > div > img")

	// Catalog defaults: the recognized category vocabulary
	v.SetDefault("catalog.valid_categories", []string{
		"fruit-veg", "fresh-foods", "milk", "chilled", "meat", "seafood",
		"frozen", "pantry", "bakery", "drinks", "snacks",
		"health-body", "household", "baby", "pets",
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Store.Driver != "memory" && config.Store.Driver != "sqlite" {
		return fmt.Errorf("store driver must be 'memory' or 'sqlite', got: %s", config.Store.Driver)
	}

	if config.Store.Driver == "sqlite" && config.Store.SQLitePath == "" {
		return fmt.Errorf("SQLite path is required when store driver is 'sqlite'")
	}

	if config.Scraper.SourceSite == "" {
		return fmt.Errorf("scraper source site is required (set SHELFWATCH_SCRAPER_SOURCE_SITE)")
	}

	if len(config.Catalog.ValidCategories) == 0 {
		return fmt.Errorf("at least one recognized catalog category is required")
	}

	return nil
}
