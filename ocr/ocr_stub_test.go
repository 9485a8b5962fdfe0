//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNew_ReturnsErrOCRNotEnabled(t *testing.T) {
	c, err := New()
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("New() error = %v, want ErrOCRNotEnabled", err)
	}
	if c != nil {
		t.Error("New() should return a nil client when OCR is not enabled")
	}
}

func TestStubClient_Methods(t *testing.T) {
	var c *Client

	if err := c.Close(); err != nil {
		t.Errorf("Close() on nil client = %v, want nil", err)
	}

	if _, err := c.Recognize([]byte("img")); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Recognize() error = %v, want ErrOCRNotEnabled", err)
	}

	if err := c.SetLanguage("eng"); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetLanguage() error = %v, want ErrOCRNotEnabled", err)
	}
}
