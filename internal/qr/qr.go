// Package qr renders scan payloads as PNG data URIs that can be embedded
// directly into an <img> tag.
package qr

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when the payload is empty or only whitespace
	ErrEmptyContent = errors.New("content cannot be empty")
	// ErrGenerateFailed is returned when QR code generation fails
	ErrGenerateFailed = errors.New("failed to generate QR code")
)

// defaultSize is the image size in pixels used when no size is specified
const defaultSize = 256

// Generate creates a QR code PNG with the given content.
func Generate(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerateFailed, err)
	}
	return png, nil
}

// DataURI creates a base64 data URI of a QR code image for the given content,
// suitable for use as an <img> src attribute.
func DataURI(content string, size int) (string, error) {
	png, err := Generate(content, size)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("data:image/png;base64,%s", base64.StdEncoding.EncodeToString(png)), nil
}
