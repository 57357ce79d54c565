package configs

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// -- Gateway --

	Host                 string        `env:"HOST" envDefault:""`
	Port                 int           `env:"PORT" envDefault:"3000"`
	ServerRequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" envDefault:"60s"`
	DisableGateway       bool          `env:"DISABLE_GATEWAY" envDefault:"false"`

	// -- Session bus --

	DisableBus bool `env:"DISABLE_BUS" envDefault:"false"`

	// -- Store --

	// Optional YAML file overriding the seeded defaults at startup.
	DefaultsPath string `env:"DEFAULTS_PATH" envDefault:""`

	// Maximum accepted writes per second, 0 disables the limiter.
	WriteMaxRate int `env:"WRITE_MAX_RATE" envDefault:"0"`

	// -- Notifications --

	SettingChangedWebhookUrl     string        `env:"SETTING_CHANGED_WEBHOOK_URL" envDefault:""`
	SettingChangedWebhookTimeout time.Duration `env:"SETTING_CHANGED_WEBHOOK_TIMEOUT" envDefault:"30s"`

	// -- Misc --

	DisableIdempotencyMiddleware bool          `env:"DISABLE_IDEMPOTENCY_MIDDLEWARE" envDefault:"false"`
	IdempotencyKeyExpiry         time.Duration `env:"IDEMPOTENCY_KEY_EXPIRY" envDefault:"1h"`
	LogLevel                     string        `env:"LOG_LEVEL" envDefault:"info"`
}

// Parse parses environment variables to a valid Config.
func Parse() (*Config, error) {
	cfg := Config{}
	err := env.Parse(&cfg, env.Options{Prefix: "PORTAL_SETTINGS_"})
	return &cfg, err
}

// ParseTestConfig parses a config for testing purposes.
func ParseTestConfig(t *testing.T) *Config {
	t.Helper()

	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}

	cfg.DisableBus = true
	cfg.DisableIdempotencyMiddleware = true

	return cfg
}

// ConfigureLogger sets the log level and formatter from config.
func ConfigureLogger(logLevel string) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}
