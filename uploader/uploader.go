// uploader/uploader.go
package uploader

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrUpload marks a failure of the external image host, distinct from a
// storage failure. The HTTP adapter maps it to 502.
var ErrUpload = errors.New("image upload failed")

// ImageUploader turns an inline image payload into a durable public URL.
//
// name is a human-readable hint (the battle title) folded into the object
// key. Empty payloads and payloads that are already http(s) URLs are
// returned unchanged, so re-saving a persisted record is a no-op here.
// Callers must upload before persisting: a record must never reference an
// asset whose upload failed.
type ImageUploader interface {
	Upload(ctx context.Context, name, payload string) (string, error)
}

// Noop passes payloads through untouched, for deployments without image-host
// credentials.
type Noop struct{}

func (Noop) Upload(ctx context.Context, name, payload string) (string, error) {
	return payload, nil
}

// IsRemoteURL reports whether the payload already points at hosted storage.
func IsRemoteURL(payload string) bool {
	return strings.HasPrefix(payload, "http://") || strings.HasPrefix(payload, "https://")
}

var extByMIME = map[string]string{
	"image/png":     ".png",
	"image/jpeg":    ".jpg",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// decodePayload accepts either a data URI ("data:image/png;base64,...") or
// bare base64 and returns the raw bytes plus content type and file extension.
func decodePayload(payload string) ([]byte, string, string, error) {
	contentType := "image/png"
	encoded := payload

	if strings.HasPrefix(payload, "data:") {
		meta, rest, ok := strings.Cut(payload[len("data:"):], ",")
		if !ok {
			return nil, "", "", fmt.Errorf("malformed data URI")
		}
		contentType = strings.TrimSuffix(meta, ";base64")
		encoded = rest
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, "", "", fmt.Errorf("decode base64: %v", err)
	}

	ext, ok := extByMIME[contentType]
	if !ok {
		ext = ".png"
	}
	return data, contentType, ext, nil
}
