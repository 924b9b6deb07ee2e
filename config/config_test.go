package config

import (
	"testing"
)

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger()
	if logger == nil {
		t.Fatal("Expected a logger, got nil")
	}
}

func TestSetupService_Defaults(t *testing.T) {
	t.Setenv("PDF_SERVICE_PORT", "")
	t.Setenv("PDF_SERVICE_RENDERER", "")
	t.Setenv("PDF_SERVICE_MAX_UPLOAD_MB", "")

	cfg := SetupService()
	if cfg.ListenAddrPort != "8002" {
		t.Errorf("Expected default port 8002, got %q", cfg.ListenAddrPort)
	}
	if cfg.RendererName != "pdfium" {
		t.Errorf("Expected default renderer pdfium, got %q", cfg.RendererName)
	}
	if cfg.MaxUploadMB != 32 {
		t.Errorf("Expected default upload limit 32, got %d", cfg.MaxUploadMB)
	}
}

func TestSetupService_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PDF_SERVICE_PORT", "9100")
	t.Setenv("PDF_SERVICE_RENDERER", "fitz")
	t.Setenv("PDF_SERVICE_MAX_UPLOAD_MB", "64")

	cfg := SetupService()
	if cfg.ListenAddrPort != "9100" {
		t.Errorf("Expected port 9100, got %q", cfg.ListenAddrPort)
	}
	if cfg.RendererName != "fitz" {
		t.Errorf("Expected renderer fitz, got %q", cfg.RendererName)
	}
	if cfg.MaxUploadMB != 64 {
		t.Errorf("Expected upload limit 64, got %d", cfg.MaxUploadMB)
	}
}

func TestGetEnvInt_InvalidValue(t *testing.T) {
	t.Setenv("PDF_SERVICE_MAX_UPLOAD_MB", "not-a-number")

	cfg := SetupService()
	if cfg.MaxUploadMB != 32 {
		t.Errorf("Expected fallback to default 32, got %d", cfg.MaxUploadMB)
	}
}
