package handler

import "time"

type registerCheckinRequest struct {
	EventID string `json:"event_id" validate:"required"`
}

type checkinScanRequest struct {
	EventID   string    `json:"event_id"   validate:"required"`
	UserID    string    `json:"user_id"    validate:"required"`
	ScannedAt time.Time `json:"scanned_at" validate:"required"`
	Source    string    `json:"source"     validate:"required"`
}
