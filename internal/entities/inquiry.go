package entities

import "time"

type InquiryResponse struct {
	ID         int       `json:"id"`
	Code       string    `json:"code"`
	FacilityID int       `json:"facility_id"`
	SenderID   int       `json:"sender_id"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type UserResponse struct {
	ID          int    `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	DisplayName string `json:"display_name"`
	FacilityID  *int   `json:"facility_id,omitempty"`
}
