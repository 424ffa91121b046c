package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestSlotIDs(t *testing.T) {
	tests := []struct {
		slot    Slot
		data    string
		surface string
	}{
		{SlotSentiment, "sentiment-data", "sentimentChart"},
		{SlotKeyword, "keyword-data", "keywordChart"},
		{SlotTrend, "trend-data", "trendChart"},
		{SlotCategory, "category-data", "categoryChart"},
		{SlotChannel, "channel-data", "channelChart"},
	}
	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			if got := tt.slot.DataID(); got != tt.data {
				t.Errorf("DataID() = %q, want %q", got, tt.data)
			}
			if got := tt.slot.SurfaceID(); got != tt.surface {
				t.Errorf("SurfaceID() = %q, want %q", got, tt.surface)
			}
		})
	}
}

func TestParseSlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Slot
		wantErr bool
	}{
		{"exact", "trend", SlotTrend, false},
		{"uppercase normalized", "CHANNEL", SlotChannel, false},
		{"trims whitespace", " keyword ", SlotKeyword, false},
		{"unknown", "weather", "", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSlot(tt.input)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ParseSlot(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidSlot) {
				t.Errorf("err = %v, want ErrInvalidSlot", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultPayloadsDecodeEmpty(t *testing.T) {
	for _, slot := range Slots {
		p, err := NewPayload(slot)
		if err != nil {
			t.Fatalf("NewPayload(%s): %v", slot, err)
		}
		if err := json.Unmarshal([]byte(slot.DefaultPayload()), p); err != nil {
			t.Fatalf("default payload for %s does not decode: %v", slot, err)
		}
		if p.LabelCount() != 0 {
			t.Errorf("%s default has %d labels, want 0", slot, p.LabelCount())
		}
		if err := p.Validate(); err != nil {
			t.Errorf("%s default fails validation: %v", slot, err)
		}
	}
}

func TestSeriesDecodeAndValidate(t *testing.T) {
	var s SentimentSummary
	if err := json.Unmarshal([]byte(`{"labels":["positive","negative","neutral"],"data":[10,3,2]}`), &s); err != nil {
		t.Fatal(err)
	}
	if s.LabelCount() != 3 || s.Data[0] != 10 {
		t.Fatalf("decoded %+v", s)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("aligned series rejected: %v", err)
	}

	short := TrendSeries{Series{Labels: []string{"2024-01", "2024-02"}, Data: []float64{4}}}
	if err := short.Validate(); !errors.Is(err, ErrMisaligned) {
		t.Errorf("Validate() = %v, want ErrMisaligned", err)
	}
}

func TestChannelComparisonValidate(t *testing.T) {
	ok := ChannelComparison{
		Labels:   []string{"email", "web"},
		Positive: []float64{5, 8},
		Neutral:  []float64{1, 2},
		Negative: []float64{0, 1},
	}
	if err := ok.Validate(); err != nil {
		t.Fatalf("aligned channel data rejected: %v", err)
	}

	bad := ok
	bad.Negative = []float64{0}
	if err := bad.Validate(); !errors.Is(err, ErrMisaligned) {
		t.Errorf("Validate() = %v, want ErrMisaligned", err)
	}
}

func TestNewPayloadUnknownSlot(t *testing.T) {
	if _, err := NewPayload(Slot("weather")); !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("NewPayload(weather) err = %v, want ErrInvalidSlot", err)
	}
}
