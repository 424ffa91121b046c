package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"html"
	"time"

	"github.com/rs/zerolog"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/chart"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/dashboard"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/page"
)

// ErrStoreDisabled is returned by stored-payload operations when no database
// is configured.
var ErrStoreDisabled = errors.New("payload store disabled")

// PayloadStore persists the raw slot payloads.
type PayloadStore interface {
	Upsert(ctx context.Context, slot model.Slot, body []byte) (*model.StoredPayload, error)
	Find(ctx context.Context, slot model.Slot) (*model.StoredPayload, error)
	All(ctx context.Context) ([]model.StoredPayload, error)
	Delete(ctx context.Context, slot model.Slot) error
}

// RenderOptions configures how charts are drawn into pages.
type RenderOptions struct {
	Format       chart.Format
	Width        int
	Height       int
	IsolateSlots bool
}

// RenderResult is a rendered page and what happened while rendering it.
type RenderResult struct {
	HTML     []byte
	Report   dashboard.Report
	Format   chart.Format
	Duration time.Duration
}

// DashboardService renders dashboard pages.
type DashboardService struct {
	store PayloadStore
	opts  RenderOptions
	log   zerolog.Logger
}

// NewDashboardService creates a DashboardService. store may be nil, which
// disables the stored-payload operations.
func NewDashboardService(store PayloadStore, opts RenderOptions, log zerolog.Logger) *DashboardService {
	if opts.Format == "" {
		opts.Format = chart.FormatSVG
	}
	return &DashboardService{store: store, opts: opts, log: log}
}

// Format returns the configured output format.
func (s *DashboardService) Format() chart.Format {
	return s.opts.Format
}

func (s *DashboardService) renderer() *dashboard.Renderer {
	return dashboard.NewRenderer(s.log, dashboard.Options{IsolateSlots: s.opts.IsolateSlots})
}

// RenderPage draws the charts of an HTML page into it. Chart failures are
// reported in the result, not returned; only an unreadable document is an
// error.
func (s *DashboardService) RenderPage(ctx context.Context, src []byte) (*RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	doc, err := page.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}

	var rep dashboard.Report
	switch s.opts.Format {
	case chart.FormatChartJS:
		scripts := &chart.Scripts{}
		rep = s.renderer().Initialize(doc, scripts)
		if js := scripts.Source(); js != "" {
			doc.AppendScript(js)
		}
	default:
		lib := chart.Images{
			Renderer: chart.Renderer{Width: s.opts.Width, Height: s.opts.Height, Format: s.opts.Format},
			Sink: func(surfaceID string, format chart.Format, img []byte) error {
				return doc.Mount(surfaceID, surfaceMarkup(surfaceID, format, img))
			},
		}
		rep = s.renderer().Initialize(doc, lib)
	}

	out, err := doc.HTML()
	if err != nil {
		return nil, err
	}
	return &RenderResult{
		HTML:     out,
		Report:   rep,
		Format:   s.opts.Format,
		Duration: time.Since(start),
	}, nil
}

// Charts returns the draw calls the page would produce without rendering them.
func (s *DashboardService) Charts(ctx context.Context, src []byte) ([]chart.Call, dashboard.Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, dashboard.Report{}, err
	}
	doc, err := page.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, dashboard.Report{}, err
	}
	rec := &chart.Recorder{}
	rep := s.renderer().Initialize(doc, rec)
	return rec.Calls(), rep, nil
}

// ExportCharts renders every chart of the page as an image and hands it to sink.
func (s *DashboardService) ExportCharts(ctx context.Context, src []byte, sink func(surfaceID string, format chart.Format, img []byte) error) (dashboard.Report, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.Report{}, err
	}
	format := s.opts.Format
	if format == chart.FormatChartJS {
		return dashboard.Report{}, fmt.Errorf("cannot export %s charts as images", format)
	}
	doc, err := page.Parse(bytes.NewReader(src))
	if err != nil {
		return dashboard.Report{}, err
	}
	lib := chart.Images{
		Renderer: chart.Renderer{Width: s.opts.Width, Height: s.opts.Height, Format: format},
		Sink:     sink,
	}
	return s.renderer().Initialize(doc, lib), nil
}

// RenderStored builds the dashboard page from the stored payloads and renders it.
func (s *DashboardService) RenderStored(ctx context.Context) (*RenderResult, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	stored, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("load payloads: %w", err)
	}

	payloads := make(map[model.Slot][]byte, len(stored))
	for _, p := range stored {
		if !p.Slot.Valid() {
			s.log.Warn().Str("slot", string(p.Slot)).Msg("ignoring payload for unknown slot")
			continue
		}
		payloads[p.Slot] = p.Body
	}

	src, err := page.Layout(payloads, page.LayoutOptions{ChartJS: s.opts.Format == chart.FormatChartJS})
	if err != nil {
		return nil, err
	}
	return s.RenderPage(ctx, src)
}

func (s *DashboardService) PutPayload(ctx context.Context, slot model.Slot, body []byte) (*model.StoredPayload, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.Upsert(ctx, slot, body)
}

func (s *DashboardService) GetPayload(ctx context.Context, slot model.Slot) (*model.StoredPayload, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	return s.store.Find(ctx, slot)
}

func (s *DashboardService) DeletePayload(ctx context.Context, slot model.Slot) error {
	if s.store == nil {
		return ErrStoreDisabled
	}
	return s.store.Delete(ctx, slot)
}

// surfaceMarkup wraps a rendered image so it takes the place of the surface
// element, keeping its id.
func surfaceMarkup(surfaceID string, format chart.Format, img []byte) string {
	id := html.EscapeString(surfaceID)
	if format == chart.FormatPNG {
		return fmt.Sprintf(`<img id="%s" class="chart-surface" alt="%s" src="data:image/png;base64,%s">`,
			id, id, base64.StdEncoding.EncodeToString(img))
	}
	return fmt.Sprintf(`<div id="%s" class="chart-surface">%s</div>`, id, img)
}
