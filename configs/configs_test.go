package configs

import (
	"testing"
	"time"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("PORTAL_SETTINGS_PORT", "4000")
	t.Setenv("PORTAL_SETTINGS_LOG_LEVEL", "debug")
	t.Setenv("PORTAL_SETTINGS_WRITE_MAX_RATE", "50")
	t.Setenv("PORTAL_SETTINGS_SETTING_CHANGED_WEBHOOK_URL", "http://localhost:9000/hook")
	t.Setenv("PORTAL_SETTINGS_SETTING_CHANGED_WEBHOOK_TIMEOUT", "5s")

	cfg, err := Parse()

	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 4000 {
		t.Errorf(`expected "Port" to equal 4000, got %d`, cfg.Port)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf(`expected "LogLevel" to equal "debug", got "%s"`, cfg.LogLevel)
	}

	if cfg.WriteMaxRate != 50 {
		t.Errorf(`expected "WriteMaxRate" to equal 50, got %d`, cfg.WriteMaxRate)
	}

	if cfg.SettingChangedWebhookUrl != "http://localhost:9000/hook" {
		t.Errorf(`expected webhook URL to be set, got "%s"`, cfg.SettingChangedWebhookUrl)
	}

	if cfg.SettingChangedWebhookTimeout != 5*time.Second {
		t.Errorf(`expected webhook timeout to equal 5s, got %s`, cfg.SettingChangedWebhookTimeout)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3000 {
		t.Errorf(`expected "Port" to default to 3000, got %d`, cfg.Port)
	}

	if cfg.ServerRequestTimeout != 60*time.Second {
		t.Errorf(`expected request timeout to default to 60s, got %s`, cfg.ServerRequestTimeout)
	}

	if cfg.DisableBus || cfg.DisableGateway {
		t.Error("expected bus and gateway to be enabled by default")
	}
}
