package adapter

import (
	"context"

	"github.com/civicgrid/civicwatch/models"
)

// EmailMessage is an outbound email handed to the relay service.
type EmailMessage struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// EmailRelay delivers transactional email through the external relay
// service. Used for complaint escalations to the municipal authority.
type EmailRelay interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

// ImageClassifier checks that an uploaded photo plausibly shows the declared
// issue type. The verdict is advisory: reports are stored either way and the
// result rides along for administrators to review.
type ImageClassifier interface {
	ValidateImage(ctx context.Context, image []byte, issueType string) (models.AIValidation, error)
}
