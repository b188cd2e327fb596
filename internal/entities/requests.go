package entities

import "time"

type AvailabilityReportRequest struct {
	Status         string     `json:"status" validate:"availability_status"`
	ValidFrom      *time.Time `json:"valid_from"`
	ValidUntil     *time.Time `json:"valid_until"`
	Note           string     `json:"note" validate:"max=2000"`
	ContextSummary string     `json:"context_summary" validate:"max=500"`
	ContextItems   []string   `json:"context_items" validate:"max=20,dive,max=200"`
	Confidence     *float64   `json:"confidence" validate:"omitempty,min=0,max=1"`
}

type AvailabilityNoteRequest struct {
	Status         string   `json:"status" validate:"availability_status"`
	Intent         string   `json:"intent" validate:"max=50"`
	Note           string   `json:"note" validate:"max=2000"`
	ContextSummary string   `json:"context_summary" validate:"max=500"`
	ContextItems   []string `json:"context_items" validate:"max=20,dive,max=200"`
	PlanID         *int     `json:"plan_id" validate:"omitempty,gt=0"`
	ClientID       *int     `json:"client_id" validate:"omitempty,gt=0"`
}

type InquiryRequest struct {
	FacilityID int    `json:"facility_id" validate:"required,gt=0"`
	Subject    string `json:"subject" validate:"required,max=200"`
	Body       string `json:"body" validate:"required,max=5000"`
}

type InquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open answered closed"`
}

type RegisterRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=supporter facility_staff client"`
	DisplayName string `json:"display_name" validate:"required,max=100"`
	FacilityID  *int   `json:"facility_id" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// FacilitySearchFilter narrows the facility search before scoring.
type FacilitySearchFilter struct {
	ServiceType string
	Prefecture  string
	Limit       int
	Offset      int
}
