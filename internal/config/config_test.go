package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "LOG_LEVEL", "ENVIRONMENT", "CORS_ORIGINS",
		"CHART_FORMAT", "CHART_WIDTH", "CHART_HEIGHT", "ISOLATE_SLOTS", "MAX_PAGE_BYTES",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreEnabled() {
		t.Error("store should be disabled without DATABASE_URL")
	}
	if cfg.ChartFormat != "svg" {
		t.Errorf("ChartFormat = %q, want svg", cfg.ChartFormat)
	}
	if cfg.ChartWidth != 640 || cfg.ChartHeight != 400 {
		t.Errorf("chart size = %dx%d, want 640x400", cfg.ChartWidth, cfg.ChartHeight)
	}
	if cfg.IsolateSlots {
		t.Error("IsolateSlots should default to false")
	}
	if cfg.MaxPageBytes != 2<<20 {
		t.Errorf("MaxPageBytes = %d", cfg.MaxPageBytes)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://newsboard@localhost/newsboard")
	t.Setenv("CHART_FORMAT", "png")
	t.Setenv("CHART_WIDTH", "800")
	t.Setenv("CHART_HEIGHT", "600")
	t.Setenv("ISOLATE_SLOTS", "true")
	t.Setenv("MAX_PAGE_BYTES", "1024")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if !cfg.StoreEnabled() {
		t.Error("store should be enabled")
	}
	if cfg.ChartFormat != "png" || cfg.ChartWidth != 800 || cfg.ChartHeight != 600 {
		t.Errorf("chart = %s %dx%d", cfg.ChartFormat, cfg.ChartWidth, cfg.ChartHeight)
	}
	if !cfg.IsolateSlots {
		t.Error("IsolateSlots should be true")
	}
	if cfg.MaxPageBytes != 1024 {
		t.Errorf("MaxPageBytes = %d", cfg.MaxPageBytes)
	}
}

func TestGetEnvInt_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "wide"},
		{"zero", "0"},
		{"negative", "-5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CHART_WIDTH", tt.value)
			if got := getEnvInt("CHART_WIDTH", 640); got != 640 {
				t.Errorf("getEnvInt(%q) = %d, want fallback", tt.value, got)
			}
		})
	}
}

func TestGetEnvBool_Invalid(t *testing.T) {
	t.Setenv("ISOLATE_SLOTS", "sometimes")
	if getEnvBool("ISOLATE_SLOTS", false) {
		t.Error("invalid bool should fall back")
	}
}
