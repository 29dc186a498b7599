// Package attachments validates and encodes the inline data-URI files
// stored on appliances.
package attachments

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotDataURI   = errors.New("file_url is not a base64 data URI")
	ErrTooLarge     = errors.New("file exceeds the maximum attachment size")
	ErrTooMany      = errors.New("appliance already has the maximum number of attachments")
	ErrEmptyPayload = errors.New("attachment payload is empty")
)

// Limits caps the attachment footprint per appliance. Violations are
// rejected before anything touches the database.
type Limits struct {
	MaxPerAppliance int
	MaxFileSize     int64
}

// DefaultLimits mirror the caps the client historically enforced.
var DefaultLimits = Limits{
	MaxPerAppliance: 10,
	MaxFileSize:     5 * 1024 * 1024,
}

// Encode wraps raw bytes as a data URI with the given MIME type.
func Encode(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits a data URI into its MIME type and decoded payload.
func Decode(dataURI string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(dataURI, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return "", nil, ErrNotDataURI
	}
	mimeType := strings.TrimSuffix(meta, ";base64")

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrNotDataURI, err)
	}
	return mimeType, data, nil
}

// Validate checks a candidate attachment against the limits, given how
// many attachments the appliance already has. It returns the MIME type
// and decoded size on success so callers can fill in derived fields.
func Validate(dataURI string, existingCount int, limits Limits) (string, int64, error) {
	if existingCount >= limits.MaxPerAppliance {
		return "", 0, fmt.Errorf("%w (limit %d)", ErrTooMany, limits.MaxPerAppliance)
	}

	mimeType, data, err := Decode(dataURI)
	if err != nil {
		return "", 0, err
	}
	if len(data) == 0 {
		return "", 0, ErrEmptyPayload
	}

	size := int64(len(data))
	if size > limits.MaxFileSize {
		return "", 0, fmt.Errorf("%w (%d bytes, limit %d)", ErrTooLarge, size, limits.MaxFileSize)
	}

	return mimeType, size, nil
}
