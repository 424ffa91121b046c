package chart

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is the output encoding of a rendered chart.
type Format string

const (
	FormatSVG     Format = "svg"
	FormatPNG     Format = "png"
	FormatChartJS Format = "chartjs"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatSVG, FormatPNG, FormatChartJS:
		return f, nil
	}
	return "", fmt.Errorf("unknown chart format %q", s)
}

// ContentType returns the MIME type of an image in this format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatSVG:
		return "image/svg+xml"
	}
	return "application/javascript"
}

const (
	DefaultWidth  = 640
	DefaultHeight = 400
)

var ErrUnsupportedKind = errors.New("unsupported chart kind")

// Renderer draws chart configurations as static images with go-chart.
type Renderer struct {
	Width  int
	Height int
	Format Format
}

func (r Renderer) size() (int, int) {
	w, h := r.Width, r.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

func (r Renderer) provider() (gochart.RendererProvider, error) {
	switch r.Format {
	case FormatSVG, "":
		return gochart.SVG, nil
	case FormatPNG:
		return gochart.PNG, nil
	}
	return nil, fmt.Errorf("renderer cannot encode %q", r.Format)
}

// Render encodes cfg as an image into w.
func (r Renderer) Render(cfg Config, w io.Writer) error {
	rp, err := r.provider()
	if err != nil {
		return err
	}
	switch {
	case cfg.Type == KindPie:
		return r.pie(cfg, rp, w)
	case cfg.Type == KindBar && cfg.Stacked():
		return r.stackedBar(cfg, rp, w)
	case cfg.Type == KindBar:
		return r.bar(cfg, rp, w)
	case cfg.Type == KindLine:
		return r.line(cfg, rp, w)
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedKind, cfg.Type)
}

func (r Renderer) pie(cfg Config, rp gochart.RendererProvider, w io.Writer) error {
	if len(cfg.Data.Datasets) == 0 {
		return errors.New("pie chart has no dataset")
	}
	ds := cfg.Data.Datasets[0]
	values := make([]gochart.Value, 0, len(cfg.Data.Labels))
	for i, label := range cfg.Data.Labels {
		values = append(values, gochart.Value{
			Label: label,
			Value: valueAt(ds.Data, i),
			Style: gochart.Style{FillColor: color(ds.BackgroundColor.At(i))},
		})
	}
	width, height := r.size()
	pc := gochart.PieChart{
		Title:  ds.Label,
		Width:  width,
		Height: height,
		Values: values,
	}
	return pc.Render(rp, w)
}

func (r Renderer) bar(cfg Config, rp gochart.RendererProvider, w io.Writer) error {
	if len(cfg.Data.Datasets) == 0 {
		return errors.New("bar chart has no dataset")
	}
	ds := cfg.Data.Datasets[0]
	bars := make([]gochart.Value, 0, len(cfg.Data.Labels))
	top := 0.0
	for i, label := range cfg.Data.Labels {
		v := valueAt(ds.Data, i)
		top = math.Max(top, v)
		bars = append(bars, gochart.Value{
			Label: label,
			Value: v,
			Style: gochart.Style{
				FillColor:   color(ds.BackgroundColor.At(i)),
				StrokeColor: color(ds.BackgroundColor.At(i)),
			},
		})
	}
	width, height := r.size()
	bc := gochart.BarChart{
		Title:      ds.Label,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12}},
		Width:      width,
		Height:     height,
		BarWidth:   barWidth(width, len(bars)),
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: 0, Max: ceiling(top)}},
		Bars:       bars,
	}
	return bc.Render(rp, w)
}

// stackedBar draws one bar per label with one segment per dataset, the first
// dataset at the bottom. go-chart scales every stacked bar to full height, so
// a transparent cap pads each bar up to the tallest total to keep absolute
// heights comparable.
func (r Renderer) stackedBar(cfg Config, rp gochart.RendererProvider, w io.Writer) error {
	totals := make([]float64, len(cfg.Data.Labels))
	tallest := 0.0
	for i := range cfg.Data.Labels {
		for _, ds := range cfg.Data.Datasets {
			totals[i] += math.Max(valueAt(ds.Data, i), 0)
		}
		tallest = math.Max(tallest, totals[i])
	}

	width, height := r.size()
	bw := barWidth(width, len(cfg.Data.Labels))
	bars := make([]gochart.StackedBar, 0, len(cfg.Data.Labels))
	for i, label := range cfg.Data.Labels {
		values := []gochart.Value{{
			Value: tallest - totals[i],
			Style: gochart.Style{FillColor: drawing.ColorTransparent, StrokeColor: drawing.ColorTransparent},
		}}
		for j := len(cfg.Data.Datasets) - 1; j >= 0; j-- {
			ds := cfg.Data.Datasets[j]
			values = append(values, gochart.Value{
				Label: ds.Label,
				Value: math.Max(valueAt(ds.Data, i), 0),
				Style: gochart.Style{
					FillColor:   color(ds.BackgroundColor.At(i)),
					StrokeColor: color(ds.BackgroundColor.At(i)),
				},
			})
		}
		bars = append(bars, gochart.StackedBar{Name: label, Width: bw, Values: values})
	}

	names := make([]string, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		names = append(names, ds.Label)
	}
	sbc := gochart.StackedBarChart{
		Title:      strings.Join(names, " / "),
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12}},
		Width:      width,
		Height:     height,
		YAxis:      gochart.Style{Hidden: true},
		Bars:       bars,
	}
	return sbc.Render(rp, w)
}

func (r Renderer) line(cfg Config, rp gochart.RendererProvider, w io.Writer) error {
	n := len(cfg.Data.Labels)
	if n == 0 {
		return errors.New("line chart has no labels")
	}
	ticks := make([]gochart.Tick, 0, n)
	for i, label := range cfg.Data.Labels {
		ticks = append(ticks, gochart.Tick{Value: float64(i), Label: label})
	}

	lo, hi := 0.0, 0.0
	series := make([]gochart.Series, 0, len(cfg.Data.Datasets))
	for _, ds := range cfg.Data.Datasets {
		xs := make([]float64, n)
		ys := make([]float64, n)
		for i := range xs {
			xs[i] = float64(i)
			ys[i] = valueAt(ds.Data, i)
			lo = math.Min(lo, ys[i])
			hi = math.Max(hi, ys[i])
		}
		// A single point has no x range; widen it so go-chart can lay out the axis.
		if n == 1 {
			xs = append(xs, 1)
			ys = append(ys, ys[0])
		}
		c := color(ds.BorderColor)
		series = append(series, gochart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ys,
			Style: gochart.Style{
				StrokeColor: c,
				StrokeWidth: 2,
				DotColor:    c,
				DotWidth:    3,
			},
		})
	}
	if hi <= lo {
		hi = lo + 1
	}

	width, height := r.size()
	ch := gochart.Chart{
		Width:      width,
		Height:     height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      gochart.XAxis{Ticks: ticks},
		YAxis:      gochart.YAxis{Range: &gochart.ContinuousRange{Min: lo, Max: hi}},
		Series:     series,
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch.Render(rp, w)
}

// Images is a Library that renders each chart with Renderer and passes the
// encoded image to Sink.
type Images struct {
	Renderer Renderer
	Sink     func(surfaceID string, format Format, img []byte) error
}

func (i Images) Draw(surfaceID string, cfg Config) error {
	var buf bytes.Buffer
	if err := i.Renderer.Render(cfg, &buf); err != nil {
		return fmt.Errorf("render %s chart: %w", cfg.Type, err)
	}
	format := i.Renderer.Format
	if format == "" {
		format = FormatSVG
	}
	return i.Sink(surfaceID, format, buf.Bytes())
}

func valueAt(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}

func color(hex string) drawing.Color {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return drawing.ColorBlack
	}
	return drawing.ColorFromHex(hex)
}

func ceiling(top float64) float64 {
	if top < 1 {
		return 1
	}
	return math.Ceil(top * 1.1)
}

func barWidth(width, bars int) int {
	if bars == 0 {
		return 40
	}
	w := (width - 80) / (bars * 2)
	switch {
	case w < 8:
		return 8
	case w > 60:
		return 60
	}
	return w
}
