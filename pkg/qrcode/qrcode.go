// Package qrcode renders QR code images, used for the printable feedback
// form link handed to customers.
package qrcode

import (
	"encoding/base64"
	"errors"
	"strings"

	skipqrcode "github.com/skip2/go-qrcode"
)

var (
	// ErrEmptyContent is returned when there is nothing to encode.
	ErrEmptyContent = errors.New("qrcode: content cannot be empty")
	// ErrGenerate wraps encoder failures.
	ErrGenerate = errors.New("qrcode: failed to generate image")
)

// defaultSize matches the 400px codes the dashboard prints.
const defaultSize = 400

// PNG encodes content as a QR code PNG of the given pixel size. A
// non-positive size falls back to the default.
func PNG(content string, size int) ([]byte, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if size <= 0 {
		size = defaultSize
	}
	png, err := skipqrcode.Encode(content, skipqrcode.Medium, size)
	if err != nil {
		return nil, errors.Join(ErrGenerate, err)
	}
	return png, nil
}

// DataURL encodes content as a base64 data URL suitable for an <img> src.
func DataURL(content string, size int) (string, error) {
	png, err := PNG(content, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
