package store

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

// mediaStore uploads report images to the external media service and hands
// back the public URL the service assigns.
type mediaStore struct {
	client *resty.Client
	logger *logger.Logger
}

func NewMediaStore(endpoint, token string, log *logger.Logger) ImageStore {
	client := resty.New().
		SetBaseURL(endpoint).
		SetAuthToken(token)

	return &mediaStore{
		client: client,
		logger: log,
	}
}

func (m *mediaStore) UploadImage(ctx context.Context, data []byte, name string, path string) (string, error) {
	log := logger.FromContext(ctx)

	var uploaded models.UploadResponse

	resp, err := m.client.R().
		SetContext(ctx).
		SetFileReader("file", name, bytes.NewReader(data)).
		SetFormData(map[string]string{"path": path}).
		SetResult(&uploaded).
		Post("/upload")
	if err != nil {
		log.Err(err).
			Str("func", "mediaStore.UploadImage").
			Str("name", name).
			Msg("media upload request failed")
		return "", fmt.Errorf("upload image: %w", err)
	}
	if resp.IsError() {
		log.Error().
			Str("func", "mediaStore.UploadImage").
			Int("status", resp.StatusCode()).
			Msg("media service rejected upload")
		return "", fmt.Errorf("upload image: unexpected status %d", resp.StatusCode())
	}
	if uploaded.URL == "" {
		return "", fmt.Errorf("upload image: empty url in response")
	}

	return uploaded.URL, nil
}
