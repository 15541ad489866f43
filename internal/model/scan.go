package model

import "time"

// ScanRecord is one audited inbound scan: what was scanned where, and
// what the state machine decided. Append-only history.
type ScanRecord struct {
	ID          int64        `json:"id"`
	TagID       string       `json:"tag_id"`
	ScannerID   string       `json:"scanner_id"`
	ScannerRole ScannerRole  `json:"scanner_role"`
	FromState   GarmentState `json:"from_state,omitempty"`
	ToState     GarmentState `json:"to_state,omitempty"`
	Outcome     string       `json:"outcome"`
	ScannedAt   time.Time    `json:"scanned_at"`
}
