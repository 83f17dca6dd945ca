package store

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURIStore_UploadImage(t *testing.T) {
	s := NewDataURIStore()

	pngHeader := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

	uri, err := s.UploadImage(context.Background(), pngHeader, "photo.png", "reports")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(uri, "data:image/png;base64,"))

	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, "data:image/png;base64,"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, decoded)
}

func TestDataURIStore_UploadImage_Empty(t *testing.T) {
	s := NewDataURIStore()

	_, err := s.UploadImage(context.Background(), nil, "photo.png", "reports")
	assert.Error(t, err)
}
