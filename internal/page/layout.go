package page

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

// ChartJSSource is where the browser loads Chart.js from.
const ChartJSSource = "https://cdn.jsdelivr.net/npm/chart.js"

//go:embed layout.html.tmpl
var layoutSource string

var layoutTmpl = template.Must(template.New("layout").Parse(layoutSource))

var slotTitles = map[model.Slot]string{
	model.SlotSentiment: "Sentiment Distribution",
	model.SlotKeyword:   "Top Keywords",
	model.SlotTrend:     "Analyses Over Time",
	model.SlotCategory:  "Category Distribution",
	model.SlotChannel:   "Channel Comparison",
}

type layoutSlot struct {
	Title     string
	DataID    string
	SurfaceID string
	Present   bool
	Body      template.JS
}

type layoutData struct {
	Title   string
	ChartJS bool
	Script  string
	Slots   []layoutSlot
}

// LayoutOptions controls the generated dashboard page.
type LayoutOptions struct {
	Title string
	// ChartJS adds the Chart.js script tag for client-side drawing.
	ChartJS bool
}

// Layout builds a dashboard page embedding the given raw payloads. Slots
// without a payload get a surface but no data element.
func Layout(payloads map[model.Slot][]byte, opts LayoutOptions) ([]byte, error) {
	data := layoutData{Title: opts.Title, ChartJS: opts.ChartJS, Script: ChartJSSource}
	if data.Title == "" {
		data.Title = "Statistics"
	}
	for _, slot := range model.Slots {
		body, ok := payloads[slot]
		data.Slots = append(data.Slots, layoutSlot{
			Title:     slotTitles[slot],
			DataID:    slot.DataID(),
			SurfaceID: slot.SurfaceID(),
			Present:   ok,
			Body:      template.JS(escapeScriptText(body)),
		})
	}

	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("execute layout: %w", err)
	}
	return buf.Bytes(), nil
}

// escapeScriptText keeps a payload from closing its script element. "<" can
// only appear inside JSON strings, where \u003c decodes to the same text.
func escapeScriptText(body []byte) string {
	return string(bytes.ReplaceAll(body, []byte("<"), []byte(`\u003c`)))
}
