package model

import (
	"errors"
	"strings"
)

// Slot identifies one of the five chart-rendering targets on the dashboard.
type Slot string

const (
	SlotSentiment Slot = "sentiment"
	SlotKeyword   Slot = "keyword"
	SlotTrend     Slot = "trend"
	SlotCategory  Slot = "category"
	SlotChannel   Slot = "channel"
)

// ErrInvalidSlot is returned when a slot name is not one of the five known slots.
var ErrInvalidSlot = errors.New("invalid slot")

// Slots lists every slot in rendering order.
var Slots = []Slot{SlotSentiment, SlotKeyword, SlotTrend, SlotCategory, SlotChannel}

// DataID is the id of the page element holding the slot's JSON payload.
func (s Slot) DataID() string {
	return string(s) + "-data"
}

// SurfaceID is the id of the page element the slot's chart is drawn into.
func (s Slot) SurfaceID() string {
	return string(s) + "Chart"
}

// Valid reports whether s is one of the known slots.
func (s Slot) Valid() bool {
	for _, known := range Slots {
		if s == known {
			return true
		}
	}
	return false
}

// ParseSlot normalizes and validates a slot name.
func ParseSlot(name string) (Slot, error) {
	s := Slot(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", ErrInvalidSlot
	}
	return s, nil
}

// DefaultPayload is the JSON substituted when a slot's data element is absent.
func (s Slot) DefaultPayload() string {
	if s == SlotChannel {
		return `{"labels": [], "positive": [], "neutral": [], "negative": []}`
	}
	return `{"labels": [], "data": []}`
}
