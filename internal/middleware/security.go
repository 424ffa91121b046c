package middleware

import "github.com/gofiber/fiber/v3"

// ContentSecurityPolicy allows inline scripts (for the payload elements and
// Chart.js calls) and Chart.js from jsDelivr.
const ContentSecurityPolicy = "default-src 'self'; " +
	"script-src 'self' 'unsafe-inline' https://cdn.jsdelivr.net; " +
	"style-src 'self' 'unsafe-inline'; " +
	"img-src 'self' data:;"

// NewSecurityHeaders sets the Content-Security-Policy on every response.
func NewSecurityHeaders() fiber.Handler {
	return func(c fiber.Ctx) error {
		err := c.Next()
		c.Set("Content-Security-Policy", ContentSecurityPolicy)
		c.Set("X-Content-Type-Options", "nosniff")
		return err
	}
}
