package middleware

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

// Size limits for request bodies.
const (
	DefaultMaxPageBytes = 2 << 20   // whole HTML page with embedded payloads
	MaxPayloadBytes     = 256 << 10 // single slot payload
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateSlot checks that a slot name is one of the dashboard slots.
func ValidateSlot(name string) (model.Slot, string) {
	slot, err := model.ParseSlot(name)
	if err != nil {
		return "", "slot must be one of sentiment, keyword, trend, category, channel"
	}
	return slot, ""
}

// ValidatePage checks an HTML page body.
func ValidatePage(body []byte, maxBytes int) string {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxPageBytes
	}
	if len(body) == 0 {
		return "page body is required"
	}
	if len(body) > maxBytes {
		return fmt.Sprintf("page body must be at most %d bytes", maxBytes)
	}
	return ""
}

// ValidatePayload checks a slot payload body. Only JSON well-formedness is
// checked; the payload shape is the renderer's concern.
func ValidatePayload(body []byte) string {
	if len(body) == 0 {
		return "payload body is required"
	}
	if len(body) > MaxPayloadBytes {
		return fmt.Sprintf("payload must be at most %d bytes", MaxPayloadBytes)
	}
	if !json.Valid(body) {
		return "payload must be valid JSON"
	}
	return ""
}
