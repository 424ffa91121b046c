// Package chart builds chart configurations for the dashboard slots and hands
// them to a charting library.
package chart

import (
	"encoding/json"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

// Kind is the chart type understood by the charting library.
type Kind string

const (
	KindPie  Kind = "pie"
	KindBar  Kind = "bar"
	KindLine Kind = "line"
)

// Palette colors used by the dashboard.
const (
	Green      = "#4caf50"
	Red        = "#f44336"
	Yellow     = "#ffeb3b"
	Blue       = "#2196f3"
	Purple     = "#9c27b0"
	DeepOrange = "#ff5722"
	Cyan       = "#00bcd4"
	LightGreen = "#8bc34a"
	Amber      = "#ffc107"
)

var (
	SentimentPalette = Colors{Green, Red, Yellow}
	CategoryPalette  = Colors{DeepOrange, Cyan, LightGreen, Amber}
)

// Colors is a list of CSS colors. A single color is encoded as a plain string
// so the library applies it to every element of the dataset.
type Colors []string

func (c Colors) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	return json.Marshal([]string(c))
}

// At returns the color for element i, cycling through the list.
func (c Colors) At(i int) string {
	if len(c) == 0 {
		return ""
	}
	return c[i%len(c)]
}

// Config is the full configuration object passed to the charting library.
type Config struct {
	Type    Kind    `json:"type"`
	Data    Data    `json:"data"`
	Options Options `json:"options"`
}

type Data struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// Dataset is one named series plotted against the shared labels.
type Dataset struct {
	Label           string    `json:"label,omitempty"`
	Data            []float64 `json:"data"`
	BackgroundColor Colors    `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
	Fill            *bool     `json:"fill,omitempty"`
}

type Options struct {
	Responsive          bool    `json:"responsive"`
	MaintainAspectRatio bool    `json:"maintainAspectRatio"`
	Plugins             Plugins `json:"plugins"`
	Scales              *Scales `json:"scales,omitempty"`
}

type Plugins struct {
	Legend Legend `json:"legend"`
}

type Legend struct {
	Display  bool   `json:"display"`
	Position string `json:"position"`
}

type Scales struct {
	X Axis `json:"x"`
	Y Axis `json:"y"`
}

type Axis struct {
	Stacked     bool `json:"stacked"`
	BeginAtZero bool `json:"beginAtZero,omitempty"`
}

// Stacked reports whether the chart stacks its datasets.
func (c Config) Stacked() bool {
	return c.Options.Scales != nil && c.Options.Scales.X.Stacked && c.Options.Scales.Y.Stacked
}

// JSON encodes the configuration in the charting library's wire shape.
func (c Config) JSON() ([]byte, error) {
	return json.Marshal(c)
}

// SharedOptions is the display configuration common to every dashboard chart.
func SharedOptions() Options {
	return Options{
		Responsive:          true,
		MaintainAspectRatio: false,
		Plugins: Plugins{
			Legend: Legend{Display: true, Position: "top"},
		},
	}
}

func Sentiment(s model.SentimentSummary) Config {
	return Config{
		Type: KindPie,
		Data: Data{
			Labels: s.Labels,
			Datasets: []Dataset{{
				Data:            s.Data,
				BackgroundColor: SentimentPalette,
			}},
		},
		Options: SharedOptions(),
	}
}

func Keyword(k model.KeywordFrequency) Config {
	return Config{
		Type: KindBar,
		Data: Data{
			Labels: k.Labels,
			Datasets: []Dataset{{
				Label:           "Frequency",
				Data:            k.Data,
				BackgroundColor: Colors{Blue},
			}},
		},
		Options: SharedOptions(),
	}
}

func Trend(t model.TrendSeries) Config {
	fill := false
	return Config{
		Type: KindLine,
		Data: Data{
			Labels: t.Labels,
			Datasets: []Dataset{{
				Label:       "Analyses",
				Data:        t.Data,
				BorderColor: Purple,
				Fill:        &fill,
			}},
		},
		Options: SharedOptions(),
	}
}

func Category(c model.CategoryBreakdown) Config {
	return Config{
		Type: KindBar,
		Data: Data{
			Labels: c.Labels,
			Datasets: []Dataset{{
				Label:           "Count",
				Data:            c.Data,
				BackgroundColor: CategoryPalette,
			}},
		},
		Options: SharedOptions(),
	}
}

// Channel builds the stacked sentiment-per-channel bar chart. The value axis
// always starts at zero.
func Channel(c model.ChannelComparison) Config {
	opts := SharedOptions()
	opts.Scales = &Scales{
		X: Axis{Stacked: true},
		Y: Axis{Stacked: true, BeginAtZero: true},
	}
	return Config{
		Type: KindBar,
		Data: Data{
			Labels: c.Labels,
			Datasets: []Dataset{
				{Label: "Positive", Data: c.Positive, BackgroundColor: Colors{Green}},
				{Label: "Neutral", Data: c.Neutral, BackgroundColor: Colors{Yellow}},
				{Label: "Negative", Data: c.Negative, BackgroundColor: Colors{Red}},
			},
		},
		Options: opts,
	}
}

// For builds the configuration for a decoded slot record.
func For(p model.Payload) (Config, error) {
	switch v := p.(type) {
	case *model.SentimentSummary:
		return Sentiment(*v), nil
	case *model.KeywordFrequency:
		return Keyword(*v), nil
	case *model.TrendSeries:
		return Trend(*v), nil
	case *model.CategoryBreakdown:
		return Category(*v), nil
	case *model.ChannelComparison:
		return Channel(*v), nil
	}
	return Config{}, model.ErrInvalidSlot
}
