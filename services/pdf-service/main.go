// Command pdf-service exposes the gateway operations over HTTP for callers
// that want a long-lived process instead of the single-shot CLI. The
// /pdf/process endpoint speaks the exact CLI contract: base64 body in, one
// ProcessResult JSON object out.
package main

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/oklog/ulid/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/scandocs/pdfgateway/config"
	"github.com/scandocs/pdfgateway/gateway"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// The renderer instance is shared across requests; PDFium runs on a
// single-worker pool so calls are serialized through the mutex.
var (
	rendererMu sync.Mutex
	renderer   gateway.Renderer
)

type extractTextResponse struct {
	Text  string `json:"text"`
	Pages int    `json:"pages"`
}

type toImageResponse struct {
	Image string `json:"image"` // base64 encoded PNG
}

type infoResponse struct {
	Pages int  `json:"pages"`
	Valid bool `json:"valid"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func main() {
	Logger = config.SetupLogger()
	config.Logger = Logger
	gateway.Logger = Logger

	serviceConfig := config.SetupService()

	var err error
	renderer, err = newRenderer(serviceConfig.RendererName)
	if err != nil {
		Logger.Error("Unable to initialise renderer", "renderer", serviceConfig.RendererName, "error", err)
		os.Exit(1)
	}
	defer renderer.Close()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(fmt.Sprintf("%dM", serviceConfig.MaxUploadMB)))

	e.GET("/health", healthHandler)
	e.POST("/pdf/extract-text", extractTextHandler)
	e.POST("/pdf/to-image", toImageHandler)
	e.POST("/pdf/process", processHandler)
	e.POST("/pdf/info", infoHandler)

	Logger.Info("Starting PDF service", "port", serviceConfig.ListenAddrPort, "renderer", serviceConfig.RendererName)
	if err := e.Start(":" + serviceConfig.ListenAddrPort); err != nil {
		Logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func newRenderer(name string) (gateway.Renderer, error) {
	switch name {
	case "fitz":
		return gateway.NewFitzRenderer()
	case "pdfium":
		return gateway.NewPDFiumRenderer()
	default:
		return nil, fmt.Errorf("unknown renderer %q, want fitz or pdfium", name)
	}
}

func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// readPDFForm pulls the uploaded document out of the multipart "pdf" field.
func readPDFForm(c echo.Context) ([]byte, error) {
	file, err := c.FormFile("pdf")
	if err != nil {
		return nil, fmt.Errorf("no PDF file provided: %w", err)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("unable to open uploaded PDF: %w", err)
	}
	defer src.Close()

	return io.ReadAll(src)
}

func extractTextHandler(c echo.Context) error {
	documentID := ulid.Make().String()

	data, err := readPDFForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	Logger.Info("Extracting text", "document", documentID, "bytes", len(data))
	text, pages := gateway.ExtractText(data)

	return c.JSON(http.StatusOK, extractTextResponse{Text: text, Pages: pages})
}

func toImageHandler(c echo.Context) error {
	documentID := ulid.Make().String()

	data, err := readPDFForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	pageIndex := 0
	if value := c.FormValue("page"); value != "" {
		pageIndex, err = strconv.Atoi(value)
		if err != nil || pageIndex < 0 {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: "page must be a non-negative integer"})
		}
	}

	Logger.Info("Converting PDF to image", "document", documentID, "bytes", len(data), "page", pageIndex)

	rendererMu.Lock()
	img, err := renderer.Render(data, pageIndex)
	rendererMu.Unlock()
	if err != nil {
		Logger.Error("Image conversion failed", "document", documentID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("image conversion failed: %v", err)})
	}

	// Downstream OCR consumers expect a fixed width with crisp glyph edges
	resized := imaging.Resize(img, 1024, 0, imaging.Lanczos)
	sharpened := imaging.Sharpen(resized, 0.5)

	encoded, err := gateway.EncodePNG(sharpened)
	if err != nil {
		Logger.Error("PNG encoding failed", "document", documentID, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: fmt.Sprintf("image conversion failed: %v", err)})
	}

	return c.JSON(http.StatusOK, toImageResponse{Image: encoded})
}

func processHandler(c echo.Context) error {
	documentID := ulid.Make().String()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusOK, gateway.FailureResult(fmt.Sprintf("reading request body: %v", err)))
	}

	encoded := strings.TrimSpace(string(body))
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		Logger.Error("Request body is not valid base64", "document", documentID, "error", err)
		return c.JSON(http.StatusOK, gateway.FailureResult(fmt.Sprintf("decoding base64 input: %v", err)))
	}

	Logger.Info("Processing PDF", "document", documentID, "bytes", len(data))

	rendererMu.Lock()
	result := gateway.ProcessWith(renderer, data)
	rendererMu.Unlock()

	return c.JSON(http.StatusOK, result)
}

func infoHandler(c echo.Context) error {
	documentID := ulid.Make().String()

	data, err := readPDFForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	conf := model.NewDefaultConfiguration()
	rs := bytes.NewReader(data)

	pages, err := api.PageCount(rs, conf)
	if err != nil {
		Logger.Warn("Unable to read page count", "document", documentID, "error", err)
		return c.JSON(http.StatusOK, infoResponse{Pages: 0, Valid: false})
	}

	valid := true
	if _, err := rs.Seek(0, io.SeekStart); err == nil {
		if err := api.Validate(rs, conf); err != nil {
			Logger.Warn("Document failed validation", "document", documentID, "error", err)
			valid = false
		}
	}

	return c.JSON(http.StatusOK, infoResponse{Pages: pages, Valid: valid})
}
