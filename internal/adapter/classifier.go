package adapter

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

type classifierRequest struct {
	Image     string `json:"image"`
	IssueType string `json:"issueType"`
}

type imageClassifier struct {
	client *resty.Client
	logger *logger.Logger
}

// NewImageClassifier constructs the HTTP implementation of [ImageClassifier]
// pointed at the configured classifier endpoint.
func NewImageClassifier(cfg config.Adapter, logger *logger.Logger) (ImageClassifier, error) {
	baseURL, err := normalizeBaseURL(cfg.ClassifierEndpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid classifier endpoint: %w", err)
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &imageClassifier{client: client, logger: logger}, nil
}

func (c *imageClassifier) ValidateImage(ctx context.Context, image []byte, issueType string) (models.AIValidation, error) {
	log := logger.FromContext(ctx)

	var verdict models.AIValidation

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(classifierRequest{
			Image:     base64.StdEncoding.EncodeToString(image),
			IssueType: issueType,
		}).
		SetResult(&verdict).
		Post("/validate")
	if err != nil {
		log.Err(err).
			Str("func", "imageClassifier.ValidateImage").
			Str("issue_type", issueType).
			Msg("classifier request failed")
		return models.AIValidation{}, fmt.Errorf("validate image: %w", err)
	}

	if mapErr := mapHTTPError(resp); mapErr != nil {
		log.Err(mapErr).
			Str("func", "imageClassifier.ValidateImage").
			Str("issue_type", issueType).
			Msg("classifier rejected request")
		return models.AIValidation{}, fmt.Errorf("validate image: %w", mapErr)
	}

	return verdict, nil
}
