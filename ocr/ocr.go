//go:build ocr

// Package ocr provides the text-recognition capability for image regions,
// backed by the Tesseract engine via gosseract.
//
// Tesseract must be installed on the system. On macOS:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
//
// The package builds in two flavors: this implementation when the "ocr"
// build tag is set, and a stub returning ErrOCRNotEnabled otherwise, so the
// extractor degrades gracefully when OCR support is not compiled in.
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client wraps Tesseract and satisfies the provider.OCR contract.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client. The client should be closed when no longer
// needed to release engine resources.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.) and returns
// the recognized text with surrounding whitespace trimmed.
func (c *Client) Recognize(image []byte) (string, error) {
	if err := c.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}

	return strings.TrimSpace(text), nil
}

// SetLanguage sets the language(s) for recognition. Multiple languages can
// be specified as a "+" separated string (e.g., "eng+fra"). Default is
// "eng".
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}
