package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// Environment variables names
const (
	EnvMongoURI     = "MONGO_URI"
	EnvDBName       = "DB_NAME"
	EnvTMDBAPIKey   = "TMDB_API_KEY"
	EnvAdminPass    = "ADMIN_PASS"
	EnvCookieSecret = "COOKIE_SECRET"
	EnvPort         = "PORT"
	EnvStaticDir    = "STATIC_DIR"
	EnvLogLevel     = "LOG_LEVEL"
	EnvLogFile      = "LOG_FILE"
)

// Config holds everything the process needs at startup
type Config struct {
	MongoURI      string `koanf:"mongo_uri" validate:"required"`
	DBName        string `koanf:"db_name" validate:"required"`
	TMDBAPIKey    string `koanf:"tmdb_api_key" validate:"required"`
	AdminPassword string `koanf:"admin_pass"`
	CookieSecret  string `koanf:"cookie_secret"`
	Port          string `koanf:"port" validate:"required,numeric"`
	StaticDir     string `koanf:"static_dir"`
	LogLevel      string `koanf:"log_level" validate:"oneof=trace debug info warn error"`
	LogFile       string `koanf:"log_file"`
}

func defaultConfig() *Config {
	return &Config{
		DBName:    "filmdesk",
		Port:      "5000",
		StaticDir: "public",
		LogLevel:  "info",
	}
}

var envKeys = map[string]string{
	EnvMongoURI:     "mongo_uri",
	EnvDBName:       "db_name",
	EnvTMDBAPIKey:   "tmdb_api_key",
	EnvAdminPass:    "admin_pass",
	EnvCookieSecret: "cookie_secret",
	EnvPort:         "port",
	EnvStaticDir:    "static_dir",
	EnvLogLevel:     "log_level",
	EnvLogFile:      "log_file",
}

// envTransform maps known environment variables to config keys.
// Unknown and empty variables are dropped so that defaults apply.
func envTransform(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envKeys[key], value
}

// Load reads the configuration from the defaults, then the environment
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	if err := k.Load(env.ProviderWithValue("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	if cfg.CookieSecret == "" {
		log.Warn().Msgf("%s is not set, sessions will not survive a restart", EnvCookieSecret)
		cfg.CookieSecret = uuid.NewString()
	}

	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}
