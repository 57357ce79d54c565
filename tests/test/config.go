package test

import (
	"testing"

	"github.com/fdo-backends/portal-settings/configs"
)

// LoadConfig loads test config
func LoadConfig(t *testing.T) *configs.Config {
	cfg := configs.ParseTestConfig(t)
	configs.ConfigureLogger(cfg.LogLevel)
	return cfg
}
