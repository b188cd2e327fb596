package entities

import (
	"strings"
	"time"
)

type AvailabilityStatus string

const (
	StatusAvailable   AvailabilityStatus = "available"
	StatusLimited     AvailabilityStatus = "limited"
	StatusUnavailable AvailabilityStatus = "unavailable"
)

// Legacy values still present in older rows and client payloads.
var statusSynonyms = map[string]AvailabilityStatus{
	"available":   StatusAvailable,
	"open":        StatusAvailable,
	"limited":     StatusLimited,
	"unavailable": StatusUnavailable,
	"closed":      StatusUnavailable,
}

// KnownAvailabilityStatus reports whether raw names a status or synonym,
// ignoring case and surrounding whitespace.
func KnownAvailabilityStatus(raw string) bool {
	_, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ParseAvailabilityStatus normalizes a stored or submitted status string.
// Unknown values resolve to StatusUnavailable.
func ParseAvailabilityStatus(raw string) AvailabilityStatus {
	if s, ok := statusSynonyms[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return StatusUnavailable
}

// Numeric maps the status onto the 0..1 scale used by the scorer.
func (s AvailabilityStatus) Numeric() float64 {
	switch s {
	case StatusAvailable:
		return 1.0
	case StatusLimited:
		return 0.5
	default:
		return 0.0
	}
}

// AvailabilitySummary is the availability block rendered for a facility.
// All three fields are nil together when nothing is known.
type AvailabilitySummary struct {
	Status  *AvailabilityStatus `json:"status"`
	Score   *float64            `json:"score"`
	Percent *int                `json:"percent"`
}

type AvailabilityReportView struct {
	ID             int                `json:"id"`
	Status         AvailabilityStatus `json:"status"`
	ValidFrom      time.Time          `json:"valid_from"`
	ValidUntil     *time.Time         `json:"valid_until"`
	Note           string             `json:"note,omitempty"`
	ContextSummary string             `json:"context_summary,omitempty"`
	ContextItems   []string           `json:"context_items,omitempty"`
	Confidence     *float64           `json:"confidence"`
	CreatedAt      time.Time          `json:"created_at"`
}

type AvailabilityNoteView struct {
	ID             int                `json:"id"`
	SupporterID    int                `json:"supporter_id"`
	Status         AvailabilityStatus `json:"status"`
	Intent         string             `json:"intent"`
	Note           string             `json:"note,omitempty"`
	ContextSummary string             `json:"context_summary,omitempty"`
	ContextItems   []string           `json:"context_items,omitempty"`
	PlanID         *int               `json:"plan_id,omitempty"`
	ClientID       *int               `json:"client_id,omitempty"`
	ExpiresAt      time.Time          `json:"expires_at"`
	CreatedAt      time.Time          `json:"created_at"`
}
