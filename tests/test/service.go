package test

import (
	"testing"

	"github.com/fdo-backends/portal-settings/configs"
	"github.com/fdo-backends/portal-settings/settings"
	"go.uber.org/ratelimit"
)

// GetService builds a settings service from test config, backed by a
// fresh in-memory store.
func GetService(t *testing.T, cfg *configs.Config) *settings.Service {
	t.Helper()

	var opts []settings.ServiceOption
	if cfg.WriteMaxRate > 0 {
		opts = append(opts, settings.WithWriteRatelimiter(ratelimit.New(cfg.WriteMaxRate)))
	}

	return settings.NewService(settings.NewMemoryStore(), opts...)
}
