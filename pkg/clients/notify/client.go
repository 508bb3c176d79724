package notify

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/herdbook/internal/config"
)

// Client delivers alert payloads to the configured webhook endpoint.
type Client interface {
	SendAlert(ctx context.Context, alert Alert) error
}

// Alert is the outbound notification payload.
type Alert struct {
	Kind    string `json:"kind"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	SentAt  string `json:"sentAt"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewClient builds a webhook client using the provided configuration values.
func NewClient(cfg config.AlertsConfig) *WebhookClient {
	restyClient := resty.New()
	restyClient.
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	if cfg.WebhookToken != "" {
		restyClient.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.WebhookToken))
	}

	return &WebhookClient{
		httpClient: restyClient,
		url:        cfg.WebhookURL,
	}
}

// SendAlert posts the alert to the webhook. Any non-2xx response is an error.
func (c *WebhookClient) SendAlert(ctx context.Context, alert Alert) error {
	if alert.SentAt == "" {
		alert.SentAt = time.Now().Format(time.RFC3339)
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(alert).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send alert webhook: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		return fmt.Errorf("alert webhook error: code=%d, body=%s", resp.StatusCode(), resp.String())
	}

	return nil
}
