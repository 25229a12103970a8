package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %q", cfg.Port)
	}
	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("Expected default model, got %q", cfg.GeminiModel)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("Expected 10MiB default upload limit, got %d", cfg.MaxUploadBytes)
	}
	if cfg.SessionDBPath != "" {
		t.Errorf("Expected in-memory sessions by default, got %q", cfg.SessionDBPath)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Port != "9000" {
		t.Errorf("Expected port 9000, got %q", cfg.Port)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("Expected api key from env, got %q", cfg.GeminiAPIKey)
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("Expected 1024 upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoad_InvalidIntFallsBack(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxUploadBytes != 10<<20 {
		t.Errorf("Expected fallback upload limit, got %d", cfg.MaxUploadBytes)
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Port: "8000", GeminiModel: "gemini-2.5-pro", MaxUploadBytes: 1}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}

	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty port")
	}
}

func TestIsDevelopment(t *testing.T) {
	tests := []struct {
		frontendURL string
		want        bool
	}{
		{"", true},
		{"http://localhost:3000", true},
		{"http://127.0.0.1:5173", true},
		{"https://kisan.example.com", false},
	}

	for _, tt := range tests {
		cfg := &Config{FrontendURL: tt.frontendURL}
		if got := cfg.IsDevelopment(); got != tt.want {
			t.Errorf("IsDevelopment(%q) = %v, want %v", tt.frontendURL, got, tt.want)
		}
	}
}
