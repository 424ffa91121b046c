package middleware

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/pkg/hash"
)

// Logger is the package-level zerolog logger used throughout the application.
var Logger = zerolog.Nop()

// InitLogger sets up the global zerolog logger with structured JSON output on stdout.
// Level is parsed from the given string (e.g. "debug", "info", "warn", "error").
func InitLogger(level, service string) {
	InitLoggerTo(os.Stdout, level, service)
}

// InitLoggerTo is InitLogger writing to w.
func InitLoggerTo(w io.Writer, level, service string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.DurationFieldInteger = true

	Logger = zerolog.New(w).With().
		Timestamp().
		Str("service", service).
		Logger()
}

// hashIPForLog produces a short, irreversible hash prefix of the IP address
// for log correlation without storing raw PII.
func hashIPForLog(ip string) string {
	return hash.ShortHex(ip, 12)
}

// SanitizePath replaces dynamic path segments with placeholders so logs and
// metric labels stay bounded. Known slot names are kept.
func SanitizePath(path string) string {
	parts := strings.Split(path, "/")
	for i := range parts {
		if i == 0 {
			continue
		}
		if parts[i-1] == "payloads" && !model.Slot(parts[i]).Valid() {
			parts[i] = ":slot"
		}
	}
	return strings.Join(parts, "/")
}

// NewRequestLogger returns a Fiber middleware that writes one structured line
// per request. Raw IPs are hashed. Render responses also carry the slots that
// were drawn and the slot that failed, taken from the report headers.
func NewRequestLogger() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()

		var evt *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			evt = Logger.Error()
		case status >= fiber.StatusBadRequest:
			evt = Logger.Warn()
		default:
			evt = Logger.Info()
		}

		evt = evt.
			Str("method", c.Method()).
			Str("path", SanitizePath(c.Path())).
			Int("status", status).
			Dur("duration_ms", time.Since(start)).
			Str("ip_hash", hashIPForLog(c.IP())).
			Int("bytes_sent", len(c.Response().Body()))
		if drawn := c.GetRespHeader("X-Charts-Drawn"); drawn != "" {
			evt = evt.Str("charts_drawn", drawn)
		}
		if failed := c.GetRespHeader("X-Charts-Failed"); failed != "" {
			evt = evt.Str("charts_failed", failed)
		}
		evt.Msg("request")

		return err
	}
}
