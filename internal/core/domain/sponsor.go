package domain

import (
	"errors"
	"time"
)

var ErrSponsorNotFound = errors.New("sponsor not found")

// Sponsor is an organisation backing a specific event. The owning group is
// denormalised from the event so ownership checks need a single lookup.
type Sponsor struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	UserGroupID string    `json:"user_group_id"`
	Name        string    `json:"name"`
	Tier        string    `json:"tier"`
	Website     string    `json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
