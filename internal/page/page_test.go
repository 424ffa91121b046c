package page

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

const statisticsPage = `<!DOCTYPE html>
<html><head><title>Statistics</title></head>
<body>
<script type="application/json" id="sentiment-data">{"labels":["positive"],"data":[4]}</script>
<script type="application/json" id="keyword-data"></script>
<canvas id="sentimentChart"></canvas>
<canvas id="keywordChart"></canvas>
</body></html>`

func mustParse(t *testing.T, src string) *Document {
	t.Helper()
	doc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestDocumentText(t *testing.T) {
	doc := mustParse(t, statisticsPage)

	tests := []struct {
		id      string
		want    string
		present bool
	}{
		{"sentiment-data", `{"labels":["positive"],"data":[4]}`, true},
		{"keyword-data", "", true},
		{"trend-data", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, ok := doc.Text(tt.id)
			if ok != tt.present {
				t.Fatalf("present = %v, want %v", ok, tt.present)
			}
			if got != tt.want {
				t.Errorf("text = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDocumentSurfaces(t *testing.T) {
	doc := mustParse(t, statisticsPage)
	if !doc.HasSurface("sentimentChart") {
		t.Error("sentimentChart not found")
	}
	if doc.HasSurface("channelChart") {
		t.Error("channelChart should be absent")
	}
}

func TestDocumentMountAndScript(t *testing.T) {
	doc := mustParse(t, statisticsPage)

	if err := doc.Mount("sentimentChart", `<div id="sentimentChart"><svg></svg></div>`); err != nil {
		t.Fatal(err)
	}
	if err := doc.Mount("channelChart", "<div></div>"); err == nil {
		t.Error("mount into missing surface should fail")
	}
	doc.AppendScript("console.log(1);\n")

	out, err := doc.HTML()
	if err != nil {
		t.Fatal(err)
	}
	html := string(out)
	if strings.Contains(html, `<canvas id="sentimentChart">`) {
		t.Error("canvas was not replaced")
	}
	if !strings.Contains(html, `<div id="sentimentChart"><svg></svg></div>`) {
		t.Errorf("mounted markup missing: %s", html)
	}
	if !strings.Contains(html, "<script>\nconsole.log(1);\n</script>") {
		t.Errorf("script missing: %s", html)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	payloads := map[model.Slot][]byte{
		model.SlotSentiment: []byte(`{"labels":["positive","negative"],"data":[2,1]}`),
		model.SlotKeyword:   []byte(`{"labels":["</script><b>x"],"data":[1]}`),
	}
	out, err := Layout(payloads, LayoutOptions{ChartJS: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), ChartJSSource) {
		t.Error("chart.js script tag missing")
	}

	doc := mustParse(t, string(out))
	for _, slot := range model.Slots {
		if !doc.HasSurface(slot.SurfaceID()) {
			t.Errorf("surface %s missing", slot.SurfaceID())
		}
		_, present := doc.Text(slot.DataID())
		_, want := payloads[slot]
		if present != want {
			t.Errorf("%s data element present = %v, want %v", slot, present, want)
		}
	}

	text, _ := doc.Text("keyword-data")
	var kw model.KeywordFrequency
	if err := json.Unmarshal([]byte(text), &kw); err != nil {
		t.Fatalf("escaped payload no longer decodes: %v (%s)", err, text)
	}
	if kw.Labels[0] != "</script><b>x" {
		t.Errorf("label = %q", kw.Labels[0])
	}
}

func TestLayoutWithoutChartJS(t *testing.T) {
	out, err := Layout(nil, LayoutOptions{Title: "News"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(out), ChartJSSource) {
		t.Error("chart.js included without being requested")
	}
	if !strings.Contains(string(out), "<title>News</title>") {
		t.Error("title not applied")
	}
}
