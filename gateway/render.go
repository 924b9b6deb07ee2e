package gateway

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
)

// renderDPI matches the resolution pdf2image-based OCR pipelines use.
const renderDPI = 150

// Fallback placeholder dimensions, kept fixed so callers always receive a
// renderable image even when the document cannot be rasterized.
const (
	fallbackWidth  = 400
	fallbackHeight = 200
)

// Renderer converts one page of an in-memory PDF document to an image.
type Renderer interface {
	// Render rasterizes the page at pageIndex (0-based) at 150 DPI.
	Render(data []byte, pageIndex int) (image.Image, error)

	// Close cleans up any resources used by the renderer.
	Close() error
}

// NewRenderer creates the default PDFium-based renderer (pure Go, no CGo).
func NewRenderer() (Renderer, error) {
	return NewPDFiumRenderer()
}

// RenderPage renders one page of the document and returns it base64-encoded as
// PNG. Rendering failure is not fatal: a blank white placeholder is encoded
// instead, so the result is always decodable as a PNG. A nil renderer counts
// as a failure.
func RenderPage(r Renderer, data []byte, pageIndex int) string {
	if r == nil {
		Logger.Error("No renderer available, substituting blank image", "page", pageIndex+1)
		return fallbackImageBase64()
	}

	img, err := r.Render(data, pageIndex)
	if err != nil {
		Logger.Error("Unable to render page, substituting blank image", "page", pageIndex+1, "error", err)
		return fallbackImageBase64()
	}

	encoded, err := EncodePNG(img)
	if err != nil {
		Logger.Error("Unable to encode rendered page as PNG, substituting blank image", "page", pageIndex+1, "error", err)
		return fallbackImageBase64()
	}

	Logger.Info("Converted PDF page to image", "page", pageIndex+1, "base64Length", len(encoded))
	return encoded
}

// EncodePNG encodes an image as PNG and returns the base64 text of the bytes.
func EncodePNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func fallbackImageBase64() string {
	blank := imaging.New(fallbackWidth, fallbackHeight, color.White)
	encoded, _ := EncodePNG(blank)
	return encoded
}
