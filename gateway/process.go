package gateway

import (
	"fmt"
)

// ProcessResult is the single JSON object the gateway produces for a document.
type ProcessResult struct {
	Success     bool   `json:"success"`
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64"`
	TextLength  int    `json:"text_length"`
	ImageSize   int    `json:"image_size"`
	Error       string `json:"error,omitempty"`
}

// Process extracts the text of every page and renders the first page of the
// document, creating and closing a default renderer for the call. Renderer
// construction failure degrades to the blank placeholder image.
func Process(data []byte) ProcessResult {
	renderer, err := NewRenderer()
	if err != nil {
		Logger.Error("Unable to initialise renderer", "error", err)
		return ProcessWith(nil, data)
	}
	defer renderer.Close()

	return ProcessWith(renderer, data)
}

// ProcessWith is Process with a caller-supplied renderer, so long-lived
// callers can reuse one across documents. Extraction and rendering each
// degrade locally; anything escaping both is recovered here and turned into a
// failure record, so a result is always produced.
func ProcessWith(renderer Renderer, data []byte) (result ProcessResult) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Error("Panic recovered during PDF processing", "panic", r)
			result = FailureResult(fmt.Sprintf("%v", r))
		}
	}()

	Logger.Info("Processing PDF", "bytes", len(data))

	text, pages := ExtractText(data)
	imageBase64 := RenderPage(renderer, data, 0)

	Logger.Info("PDF processing complete", "pages", pages, "textLength", len(text), "imageSize", len(imageBase64))

	return ProcessResult{
		Success:     true,
		Text:        text,
		ImageBase64: imageBase64,
		TextLength:  len(text),
		ImageSize:   len(imageBase64),
	}
}

// FailureResult builds the degraded record emitted when processing cannot run
// at all, keeping the same field shape as a successful result.
func FailureResult(reason string) ProcessResult {
	return ProcessResult{
		Success: false,
		Error:   reason,
		Text:    fmt.Sprintf("[PDF processing failed: %s]", reason),
	}
}
