package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Version is reported by the readiness probe.
const Version = "1.0.0"

const readyTimeout = 3 * time.Second

type HealthHandler struct {
	pool    *pgxpool.Pool
	format  string
	startAt time.Time
}

// NewHealthHandler creates a HealthHandler. pool is nil when the payload store
// is disabled; format is the chart format the service renders.
func NewHealthHandler(pool *pgxpool.Pool, format string) *HealthHandler {
	return &HealthHandler{pool: pool, format: format, startAt: time.Now()}
}

// Live handles GET /health/live
func (h *HealthHandler) Live(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

// Ready handles GET /health/ready
// Only a configured payload store that cannot be reached makes the service
// unready.
func (h *HealthHandler) Ready(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), readyTimeout)
	defer cancel()

	store := storeCheck(ctx, h.pool)
	status, code := "healthy", fiber.StatusOK
	if store["status"] == "down" {
		status, code = "degraded", fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status":         status,
		"checks":         fiber.Map{"payload_store": store},
		"chart_format":   h.format,
		"uptime_seconds": int(time.Since(h.startAt).Seconds()),
		"version":        Version,
	})
}

func storeCheck(ctx context.Context, pool *pgxpool.Pool) fiber.Map {
	if pool == nil {
		return fiber.Map{"status": "disabled"}
	}

	start := time.Now()
	err := pool.Ping(ctx)
	latency := time.Since(start).Milliseconds()
	if err != nil {
		return fiber.Map{"status": "down", "latency_ms": latency, "error": "connection failed"}
	}
	return fiber.Map{"status": "up", "latency_ms": latency}
}
