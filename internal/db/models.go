package db

import (
	"time"

	"carebridge/internal/entities"
)

type User struct {
	ID           int
	Email        string
	PasswordHash string
	Role         string
	DisplayName  string
	FacilityID   *int
	CreatedAt    time.Time
}

type Facility struct {
	ID           int
	Name         string
	ServiceTypes []string
	Prefecture   string
	City         string
	Address      string
	Phone        string
	Email        string
	Capacity     int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FacilityAvailabilityReport rows are never updated; a new report supersedes the old one.
type FacilityAvailabilityReport struct {
	ID             int
	FacilityID     int
	Status         entities.AvailabilityStatus
	ValidFrom      time.Time
	ValidUntil     *time.Time
	Note           string
	ContextSummary string
	ContextItems   []string
	Confidence     *float64
	ReportedBy     int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SupporterAvailabilityNote struct {
	ID             int
	FacilityID     int
	SupporterID    int
	Status         entities.AvailabilityStatus
	Intent         string
	Note           string
	ContextSummary string
	ContextItems   []string
	PlanID         *int
	ClientID       *int
	ExpiresAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Inquiry struct {
	ID         int
	Code       string
	FacilityID int
	SenderID   int
	Subject    string
	Body       string
	Status     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
