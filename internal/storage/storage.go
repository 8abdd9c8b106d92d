// Package storage uploads product images to external blob storage and
// hands back the public URL that gets persisted instead of the payload.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ImageStore is the blob-storage collaborator for product images.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
}

var extByContentType = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// DecodeDataURL parses an inline-encoded image of the form
// "data:image/png;base64,...." into its content type and raw bytes.
func DecodeDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, fmt.Errorf("not a data url")
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, fmt.Errorf("malformed data url")
	}

	contentType, encoding, _ := strings.Cut(meta, ";")
	if encoding != "base64" {
		return "", nil, fmt.Errorf("unsupported data url encoding %q", encoding)
	}
	if _, ok := extByContentType[contentType]; !ok {
		return "", nil, fmt.Errorf("unsupported image type %q", contentType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode image payload: %w", err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("empty image payload")
	}
	return contentType, data, nil
}

// ImageKey builds a collision-free object key for an uploaded image.
func ImageKey(contentType string) string {
	return "products/" + uuid.NewString() + extByContentType[contentType]
}
