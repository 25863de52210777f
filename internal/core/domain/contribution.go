package domain

import (
	"errors"
	"time"
)

// ContributionKind distinguishes money from donated goods or services.
type ContributionKind string

const (
	ContributionMonetary ContributionKind = "monetary"
	ContributionInKind   ContributionKind = "in_kind"
)

var ErrContributionNotFound = errors.New("contribution not found")

// Contribution records a monetary or in-kind donation made towards an event.
// AmountCents and Currency are set only for monetary contributions.
type Contribution struct {
	ID          string           `json:"id"`
	EventID     string           `json:"event_id"`
	UserID      string           `json:"user_id"`
	Kind        ContributionKind `json:"kind"`
	AmountCents int64            `json:"amount_cents,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	Description string           `json:"description,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}
