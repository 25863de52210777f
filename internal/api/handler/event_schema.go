package handler

import "time"

type createEventRequest struct {
	Title       string    `json:"title"       validate:"required"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"       validate:"required"`
	StartsAt    time.Time `json:"starts_at"   validate:"required"`
	EndsAt      time.Time `json:"ends_at"     validate:"required"`
	Capacity    int       `json:"capacity"    validate:"min=0"`
}

type updateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Venue       *string    `json:"venue,omitempty"`
	StartsAt    *time.Time `json:"starts_at,omitempty"`
	EndsAt      *time.Time `json:"ends_at,omitempty"`
	Capacity    *int       `json:"capacity,omitempty"`
}

type transitionEventRequest struct {
	Status string `json:"status" validate:"required,oneof=draft published completed cancelled"`
}

type listEventsResponse struct {
	Items      any   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type acceptedResponse struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
