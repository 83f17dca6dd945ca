package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
)

type emailRelay struct {
	client *resty.Client
	logger *logger.Logger
}

// NewEmailRelay constructs the HTTP implementation of [EmailRelay] pointed
// at the configured relay endpoint.
//
// Returns an error if cfg.RelayEndpoint is empty or cannot be parsed as a
// valid URL.
func NewEmailRelay(cfg config.Adapter, logger *logger.Logger) (EmailRelay, error) {
	baseURL, err := normalizeBaseURL(cfg.RelayEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid relay endpoint: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &emailRelay{client: client, logger: logger}, nil
}

func (r *emailRelay) SendEmail(ctx context.Context, msg EmailMessage) error {
	log := logger.FromContext(ctx)

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(msg).
		Post("/send")
	if err != nil {
		log.Err(err).
			Str("func", "emailRelay.SendEmail").
			Str("to", msg.To).
			Msg("relay request failed")
		return fmt.Errorf("send email: %w", err)
	}

	if mapErr := mapHTTPError(resp); mapErr != nil {
		log.Err(mapErr).
			Str("func", "emailRelay.SendEmail").
			Str("to", msg.To).
			Msg("relay rejected email")
		return fmt.Errorf("send email: %w", mapErr)
	}

	return nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}
