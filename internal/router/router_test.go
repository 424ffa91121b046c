package router

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/handler"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

func newApp() *fiber.App {
	svc := service.NewDashboardService(nil, service.RenderOptions{Format: chart.FormatChartJS}, zerolog.Nop())
	app := fiber.New()
	Setup(app, &Handlers{
		Dashboard: handler.NewDashboardHandler(svc, 0),
		Payload:   handler.NewPayloadHandler(svc),
		Export:    handler.NewExportHandler(svc),
		Health:    handler.NewHealthHandler(nil, "chartjs"),
	}, "*")
	return app
}

func TestSetup_Routes(t *testing.T) {
	app := newApp()

	tests := []struct {
		method string
		target string
		body   string
		want   int
	}{
		{fiber.MethodGet, "/health/live", "", fiber.StatusOK},
		{fiber.MethodGet, "/health/ready", "", fiber.StatusOK},
		{fiber.MethodGet, "/metrics", "", fiber.StatusOK},
		{fiber.MethodPost, "/api/dashboard/render", "<html><body></body></html>", fiber.StatusOK},
		{fiber.MethodPost, "/api/dashboard/charts", "<html><body></body></html>", fiber.StatusOK},
		{fiber.MethodGet, "/dashboard", "", fiber.StatusServiceUnavailable},
		{fiber.MethodGet, "/api/dashboard/export", "", fiber.StatusServiceUnavailable},
		{fiber.MethodGet, "/api/payloads/trend", "", fiber.StatusServiceUnavailable},
		{fiber.MethodGet, "/api/unknown", "", fiber.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			resp, err := app.Test(httptest.NewRequest(tt.method, tt.target, body))
			if err != nil {
				t.Fatal(err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.want)
			}
		})
	}
}

func TestSetup_SecurityHeaders(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/health/live", nil))
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("Content-Security-Policy"); got != middleware.ContentSecurityPolicy {
		t.Errorf("CSP = %q", got)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q", got)
	}
}

func TestSetup_RenderIsRateLimited(t *testing.T) {
	app := newApp()

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/dashboard/render", strings.NewReader("<html></html>")))
	if err != nil {
		t.Fatal(err)
	}
	if resp.Header.Get("X-RateLimit-Limit") != "30" {
		t.Errorf("X-RateLimit-Limit = %q", resp.Header.Get("X-RateLimit-Limit"))
	}
}
