package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/dashboard"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/middleware"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

type DashboardHandler struct {
	svc          *service.DashboardService
	maxPageBytes int
}

func NewDashboardHandler(svc *service.DashboardService, maxPageBytes int) *DashboardHandler {
	return &DashboardHandler{svc: svc, maxPageBytes: maxPageBytes}
}

// Render handles POST /api/dashboard/render
// The body is an HTML page with embedded payloads; the response is the same
// page with its charts drawn.
func (h *DashboardHandler) Render(c fiber.Ctx) error {
	body := c.Body()
	if errMsg := middleware.ValidatePage(body, h.maxPageBytes); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	res, err := h.svc.RenderPage(c.Context(), body)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to render page")
	}
	return sendRendered(c, res)
}

// Charts handles POST /api/dashboard/charts
// Returns the chart configurations the page would draw.
func (h *DashboardHandler) Charts(c fiber.Ctx) error {
	body := c.Body()
	if errMsg := middleware.ValidatePage(body, h.maxPageBytes); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	calls, rep, err := h.svc.Charts(c.Context(), body)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "Failed to read page")
	}
	RecordReport(rep)

	return c.JSON(fiber.Map{
		"charts": calls,
		"report": rep.Summary(),
	})
}

// Stored handles GET /dashboard
// Renders the dashboard from the stored payloads.
func (h *DashboardHandler) Stored(c fiber.Ctx) error {
	res, err := h.svc.RenderStored(c.Context())
	if err != nil {
		return storeError(c, err, "Failed to render dashboard")
	}
	return sendRendered(c, res)
}

func sendRendered(c fiber.Ctx, res *service.RenderResult) error {
	RecordReport(res.Report)
	recordRender(string(res.Format), res.Duration)
	setReportHeaders(c, res.Report)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(res.HTML)
}

func setReportHeaders(c fiber.Ctx, rep dashboard.Report) {
	c.Set("X-Charts-Drawn", joinSlots(rep.Drawn))
	if rep.Err != nil {
		c.Set("X-Charts-Failed", string(rep.Failed))
	}
}

func joinSlots(slots []model.Slot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = string(s)
	}
	return strings.Join(names, ",")
}

func storeError(c fiber.Ctx, err error, message string) error {
	if errors.Is(err, service.ErrStoreDisabled) {
		return middleware.ErrorResponse(c, fiber.StatusServiceUnavailable, "STORE_DISABLED", "Payload store is not configured")
	}
	return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", message)
}
