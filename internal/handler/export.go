package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/service"
)

type ExportHandler struct {
	svc *service.DashboardService
	now func() time.Time
}

func NewExportHandler(svc *service.DashboardService) *ExportHandler {
	return &ExportHandler{svc: svc, now: time.Now}
}

// Export handles GET /api/dashboard/export
// Serves the rendered stored dashboard as a self-contained HTML download.
func (h *ExportHandler) Export(c fiber.Ctx) error {
	res, err := h.svc.RenderStored(c.Context())
	if err != nil {
		return storeError(c, err, "Failed to export dashboard")
	}
	RecordReport(res.Report)
	recordRender(string(res.Format), res.Duration)
	setReportHeaders(c, res.Report)

	// Filenames carry YYYYMMDD so exports sort chronologically
	name := fmt.Sprintf("dashboard-%s.html", h.now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderContentDisposition, "attachment; filename="+name)
	return c.Send(res.HTML)
}
