package config

import (
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Mode        string `mapstructure:"mode"`
	FrontendURL string `mapstructure:"frontend_url"`
	RateLimit   int    `mapstructure:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	URL          string `mapstructure:"url"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
}

type LedgerConfig struct {
	CatalogFile            string `mapstructure:"catalog_file"`
	PayableReverseOnDelete bool   `mapstructure:"payable_reverse_on_delete"`
	CompanyName            string `mapstructure:"company_name"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Log      LogConfig      `mapstructure:"log"`
}

// AuthEnabled reports whether bearer tokens are verified.
func (c *Config) AuthEnabled() bool { return c.Auth.JWTSecret != "" }

// envKeys maps config keys to the environment variables that override them.
var envKeys = map[string]string{
	"server.port":                      "PORT",
	"server.mode":                      "GIN_MODE",
	"server.frontend_url":              "FRONTEND_URL",
	"server.rate_limit_per_minute":     "RATE_LIMIT_PER_MINUTE",
	"database.driver":                  "STORE_DRIVER",
	"database.url":                     "DATABASE_URL",
	"database.max_open_conns":          "DB_MAX_OPEN_CONNS",
	"database.max_idle_conns":          "DB_MAX_IDLE_CONNS",
	"auth.jwt_secret":                  "JWT_SECRET",
	"ledger.catalog_file":              "CATALOG_FILE",
	"ledger.payable_reverse_on_delete": "PAYABLE_REVERSE_ON_DELETE",
	"ledger.company_name":              "COMPANY_NAME",
	"log.level":                        "LOG_LEVEL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("server.rate_limit_per_minute", 100)
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("ledger.catalog_file", "")
	v.SetDefault("ledger.payable_reverse_on_delete", false)
	v.SetDefault("ledger.company_name", "Daniar Furniture")
	v.SetDefault("log.level", "INFO")
}

var (
	appConfig *Config
	mu        sync.Mutex
)

// Load reads .env, then an optional config file (config.yaml in the working
// directory when path is empty), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	for key, env := range envKeys {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	if path == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		if _, missing := err.(viper.ConfigFileNotFoundError); !missing || path != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.Database.Driver = strings.ToLower(c.Database.Driver)
	if c.Database.Driver == "postgres" && c.Database.URL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}

	mu.Lock()
	appConfig = &c
	mu.Unlock()
	return &c, nil
}

// Get returns the configuration from the last successful Load, or nil.
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()
	return appConfig
}
