package model

import (
	"errors"
	"fmt"
)

// ErrMisaligned is returned when a record's value arrays are not index-aligned
// with its labels.
var ErrMisaligned = errors.New("series not aligned with labels")

// Series is the common labels/data shape shared by four of the five slots.
type Series struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// Validate checks that Data has one value per label.
func (s Series) Validate() error {
	if len(s.Data) != len(s.Labels) {
		return fmt.Errorf("%w: %d labels, %d data values", ErrMisaligned, len(s.Labels), len(s.Data))
	}
	return nil
}

// SentimentSummary is the distribution of analyses per sentiment label.
type SentimentSummary struct{ Series }

// KeywordFrequency holds the most frequent keywords and their counts.
type KeywordFrequency struct{ Series }

// TrendSeries holds analysis counts per time bucket (e.g. "2024-05").
type TrendSeries struct{ Series }

// CategoryBreakdown holds analysis counts per category.
type CategoryBreakdown struct{ Series }

// ChannelComparison holds per-channel sentiment counts.
type ChannelComparison struct {
	Labels   []string  `json:"labels"`
	Positive []float64 `json:"positive"`
	Neutral  []float64 `json:"neutral"`
	Negative []float64 `json:"negative"`
}

// Validate checks that every sentiment series has one value per channel.
func (c ChannelComparison) Validate() error {
	n := len(c.Labels)
	for _, s := range []struct {
		name   string
		values []float64
	}{
		{"positive", c.Positive},
		{"neutral", c.Neutral},
		{"negative", c.Negative},
	} {
		if len(s.values) != n {
			return fmt.Errorf("%w: %d labels, %d %s values", ErrMisaligned, n, len(s.values), s.name)
		}
	}
	return nil
}

// Payload is implemented by every slot record.
type Payload interface {
	LabelCount() int
	Validate() error
}

func (s Series) LabelCount() int { return len(s.Labels) }

func (c ChannelComparison) LabelCount() int { return len(c.Labels) }

// NewPayload returns an empty record of the type carried by slot.
func NewPayload(slot Slot) (Payload, error) {
	switch slot {
	case SlotSentiment:
		return &SentimentSummary{}, nil
	case SlotKeyword:
		return &KeywordFrequency{}, nil
	case SlotTrend:
		return &TrendSeries{}, nil
	case SlotCategory:
		return &CategoryBreakdown{}, nil
	case SlotChannel:
		return &ChannelComparison{}, nil
	}
	return nil, ErrInvalidSlot
}
