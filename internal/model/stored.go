package model

import "time"

// StoredPayload is a slot's pre-serialized JSON as published by the
// statistics process. Body is kept verbatim.
type StoredPayload struct {
	Slot      Slot      `json:"slot"`
	Body      []byte    `json:"-"`
	Digest    string    `json:"digest"`
	UpdatedAt time.Time `json:"updatedAt"`
}
