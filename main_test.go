package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/scandocs/pdfgateway/config"
)

func init() {
	injectGlobals(config.SetupLogger())
}

func TestRun_InvalidBase64(t *testing.T) {
	result := run(strings.NewReader("this is !!! not base64"))

	if result.Success {
		t.Fatal("Expected failure record for invalid base64")
	}
	if result.Error == "" {
		t.Error("Expected non-empty error for invalid base64")
	}
	if result.ImageBase64 != "" || result.ImageSize != 0 || result.TextLength != 0 {
		t.Errorf("Failure record should zero payload fields, got %+v", result)
	}
}

func TestRun_CorruptDocumentStillProducesImage(t *testing.T) {
	// Valid base64, but the decoded bytes are not a PDF. Both steps should
	// degrade in place rather than failing the record.
	encoded := base64.StdEncoding.EncodeToString([]byte("junk document"))

	result := run(strings.NewReader("  \n" + encoded + "\n  "))

	if !result.Success {
		t.Fatalf("Expected degraded success, got error: %q", result.Error)
	}
	if !strings.Contains(result.Text, "extraction failed") {
		t.Errorf("Expected extraction failure note, got: %q", result.Text)
	}

	raw, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("Image field is not valid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("Image field does not decode as PNG: %v", err)
	}
	if img.Bounds().Dx() != 400 || img.Bounds().Dy() != 200 {
		t.Errorf("Expected 400x200 fallback image, got %dx%d", img.Bounds().Dx(), img.Bounds().Dy())
	}
}

func TestRun_ResultSerializesToSingleJSONObject(t *testing.T) {
	result := run(strings.NewReader("not base64 at all!"))

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(result); err != nil {
		t.Fatalf("Failed to encode result: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != 1 {
		t.Errorf("Expected exactly one output line, got %d", got)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("Output is not a JSON object: %v", err)
	}
	for _, field := range []string{"success", "text", "image_base64", "text_length", "image_size", "error"} {
		if _, ok := decoded[field]; !ok {
			t.Errorf("Missing field %q in output", field)
		}
	}
}
