package gateway

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const extractionFailedNote = "[Text extraction failed]"

// ExtractText pulls the embedded text layer out of every page of the document,
// prefixing each page with a "--- Page N ---" marker (1-based). A page that
// fails to extract, or yields no text, gets the marker plus a failure note so
// later pages still get processed. If the document itself cannot be opened the
// returned string describes the failure; this function never returns an error
// and never lets the parser panic escape.
func ExtractText(data []byte) (text string, pages int) {
	defer func() {
		if r := recover(); r != nil {
			Logger.Error("Panic recovered during text extraction", "panic", r)
			text = fmt.Sprintf("[PDF text extraction failed: %v]", r)
			pages = 0
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		Logger.Error("Unable to open PDF for text extraction", "error", err)
		return fmt.Sprintf("[PDF text extraction failed: %v]", err), 0
	}

	totalPages := reader.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			Logger.Warn("Page has no content object", "page", pageNum)
			parts = append(parts, pageMarker(pageNum)+" "+extractionFailedNote)
			continue
		}

		pageText, err := extractPageText(page, fonts)
		if err != nil {
			Logger.Warn("Unable to extract text from page", "page", pageNum, "error", err)
			parts = append(parts, pageMarker(pageNum)+" "+extractionFailedNote)
			continue
		}
		if pageText == "" {
			parts = append(parts, pageMarker(pageNum)+" "+extractionFailedNote)
			continue
		}

		parts = append(parts, pageMarker(pageNum))
		parts = append(parts, pageText)
	}

	fullText := strings.Join(parts, "\n")
	Logger.Info("Text extraction complete", "pages", totalPages, "characters", len(fullText))
	return fullText, totalPages
}

func pageMarker(pageNum int) string {
	return fmt.Sprintf("--- Page %d ---", pageNum)
}

// extractPageText reads one page's text layer. The parser panics on some
// malformed content streams, so the recover keeps a bad page from taking the
// rest of the document down with it.
func extractPageText(page pdf.Page, fonts map[string]*pdf.Font) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("text extraction panic: %v", r)
		}
	}()

	for _, name := range page.Fonts() {
		if _, ok := fonts[name]; !ok {
			font := page.Font(name)
			fonts[name] = &font
		}
	}

	return page.GetPlainText(fonts)
}
