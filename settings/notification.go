package settings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	log "github.com/sirupsen/logrus"
)

// NotificationConfig posts SettingChanged payloads to a webhook. It is
// registered on the SettingChanged event when a webhook URL is
// configured.
type NotificationConfig struct {
	settingChangedWebhookURL     *url.URL
	settingChangedWebhookTimeout time.Duration
}

// NewNotificationConfig returns nil when no webhook URL is configured.
func NewNotificationConfig(webhookURL string, timeout time.Duration) (*NotificationConfig, error) {
	if webhookURL == "" {
		return nil, nil
	}

	u, err := url.Parse(webhookURL)
	if err != nil {
		return nil, fmt.Errorf("error while parsing webhook URL: %w", err)
	}

	return &NotificationConfig{
		settingChangedWebhookURL:     u,
		settingChangedWebhookTimeout: timeout,
	}, nil
}

func (cfg *NotificationConfig) Handle(payload SettingChangedPayload) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.settingChangedWebhookTimeout)
	defer cancel()

	if err := cfg.sendSettingChangedWebhook(ctx, payload); err != nil {
		log.
			WithFields(log.Fields{"namespace": payload.Namespace, "key": payload.Key, "error": err}).
			Warn("Error while sending setting changed webhook")
	}
}

func (cfg *NotificationConfig) sendSettingChangedWebhook(ctx context.Context, payload SettingChangedPayload) error {
	content, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error while encoding webhook payload: %w", err)
	}

	client := http.Client{
		Timeout: cfg.settingChangedWebhookTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.settingChangedWebhookURL.String(), bytes.NewBuffer(content))
	if err != nil {
		return fmt.Errorf("error while creating webhook request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error while sending webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook endpoint responded with an unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
