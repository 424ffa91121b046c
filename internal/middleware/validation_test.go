package middleware

import (
	"strings"
	"testing"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
)

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    model.Slot
		wantErr bool
	}{
		{"sentiment", "sentiment", model.SlotSentiment, false},
		{"uppercase normalized", "Channel", model.SlotChannel, false},
		{"trims whitespace", " trend ", model.SlotTrend, false},
		{"empty", "", "", true},
		{"unknown", "weather", "", true},
		{"sql injection", "trend'; DROP--", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateSlot(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidatePage(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		max     int
		wantErr bool
	}{
		{"valid", "<html></html>", 100, false},
		{"empty", "", 100, true},
		{"too large", strings.Repeat("x", 101), 100, true},
		{"exactly max", strings.Repeat("x", 100), 100, false},
		{"default max", "<html></html>", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := ValidatePage([]byte(tt.body), tt.max)
			if tt.wantErr != (errMsg != "") {
				t.Errorf("ValidatePage() = %q, wantErr %v", errMsg, tt.wantErr)
			}
		})
	}
}

func TestValidatePayload(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"series", `{"labels":["a"],"data":[1]}`, false},
		{"empty object", `{}`, false},
		{"empty", "", true},
		{"not json", "not json", true},
		{"truncated", `{"labels": [`, true},
		{"too large", `"` + strings.Repeat("x", MaxPayloadBytes) + `"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errMsg := ValidatePayload([]byte(tt.body))
			if tt.wantErr != (errMsg != "") {
				t.Errorf("ValidatePayload() = %q, wantErr %v", errMsg, tt.wantErr)
			}
		})
	}
}
