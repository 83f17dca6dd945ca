package adapter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicgrid/civicwatch/internal/config"
	"github.com/civicgrid/civicwatch/internal/logger"
	"github.com/civicgrid/civicwatch/models"
)

func TestImageClassifier_ValidateImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/validate", r.URL.Path)

		var req classifierRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		decoded, err := base64.StdEncoding.DecodeString(req.Image)
		require.NoError(t, err)
		assert.Equal(t, []byte("image-bytes"), decoded)
		assert.Equal(t, models.TypePothole, req.IssueType)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.AIValidation{
			IsValid:    true,
			Confidence: 0.87,
			Message:    "pothole visible in frame",
			IssueType:  models.TypePothole,
		})
	}))
	defer srv.Close()

	classifier, err := NewImageClassifier(config.Adapter{
		ClassifierEndpoint: srv.URL,
		RequestTimeout:     time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	verdict, err := classifier.ValidateImage(context.Background(), []byte("image-bytes"), models.TypePothole)
	require.NoError(t, err)

	assert.True(t, verdict.IsValid)
	assert.InDelta(t, 0.87, verdict.Confidence, 1e-9)
}

func TestImageClassifier_ValidateImage_BadRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "unsupported image format", http.StatusBadRequest)
	}))
	defer srv.Close()

	classifier, err := NewImageClassifier(config.Adapter{
		ClassifierEndpoint: srv.URL,
		RequestTimeout:     time.Second,
	}, logger.Nop())
	require.NoError(t, err)

	_, err = classifier.ValidateImage(context.Background(), []byte("image-bytes"), models.TypeOther)
	assert.ErrorIs(t, err, ErrBadRequest)
}
