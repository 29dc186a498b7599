package attachments

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	payload := []byte("receipt scan bytes")
	uri := Encode("image/png", payload)

	mimeType, data, err := Decode(uri)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mimeType)
	assert.Equal(t, payload, data)
}

func TestDecodeRejectsMalformedURIs(t *testing.T) {
	tests := []struct {
		name string
		uri  string
	}{
		{"Not a data URI", "https://example.com/file.png"},
		{"Missing base64 marker", "data:image/png,abcd"},
		{"Missing comma", "data:image/png;base64"},
		{"Invalid base64", "data:image/png;base64,!!!not-base64!!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.uri)
			assert.ErrorIs(t, err, ErrNotDataURI)
		})
	}
}

func TestValidate(t *testing.T) {
	limits := Limits{MaxPerAppliance: 2, MaxFileSize: 16}

	t.Run("Accepts a file within limits", func(t *testing.T) {
		mimeType, size, err := Validate(Encode("application/pdf", []byte("manual")), 0, limits)
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", mimeType)
		assert.Equal(t, int64(6), size)
	})

	t.Run("Rejects when the appliance is full", func(t *testing.T) {
		_, _, err := Validate(Encode("image/png", []byte("x")), 2, limits)
		assert.ErrorIs(t, err, ErrTooMany)
	})

	t.Run("Rejects an oversized payload", func(t *testing.T) {
		_, _, err := Validate(Encode("image/png", bytes.Repeat([]byte("a"), 17)), 0, limits)
		assert.ErrorIs(t, err, ErrTooLarge)
	})

	t.Run("Rejects an empty payload", func(t *testing.T) {
		_, _, err := Validate(Encode("image/png", nil), 0, limits)
		assert.ErrorIs(t, err, ErrEmptyPayload)
	})

	t.Run("Default limits allow 5 MiB", func(t *testing.T) {
		_, size, err := Validate(Encode("image/jpeg", bytes.Repeat([]byte("b"), 1024)), 9, DefaultLimits)
		require.NoError(t, err)
		assert.Equal(t, int64(1024), size)
	})
}
