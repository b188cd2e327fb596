package service

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
)

//go:embed templates/inquiry_email.html
var templateFS embed.FS

var inquiryEmailTemplate = template.Must(template.ParseFS(templateFS, "templates/inquiry_email.html"))

var roleLabels = map[string]string{
	auth.RoleSupporter:     "supporter",
	auth.RoleFacilityStaff: "facility staff",
	auth.RoleClient:        "client",
	auth.RoleAdmin:         "administrator",
}

// InquiryNotifier is told about every newly created inquiry.
type InquiryNotifier interface {
	NotifyNewInquiry(facility db.Facility, inquiry db.Inquiry, sender auth.Claims)
}

type SenderService struct {
	sender   MessageSender
	location *time.Location
}

func NewSenderService(sender MessageSender) *SenderService {
	loc, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		loc = time.FixedZone("JST", 9*60*60)
	}
	return &SenderService{sender: sender, location: loc}
}

// NotifyNewInquiry emails and texts the facility. Delivery failures are only logged.
func (s *SenderService) NotifyNewInquiry(facility db.Facility, inquiry db.Inquiry, sender auth.Claims) {
	data := entities.InquiryEmailData{
		FacilityName:  facility.Name,
		InquiryCode:   inquiry.Code,
		SenderName:    senderName(sender),
		SenderRole:    roleLabels[sender.Role],
		Subject:       inquiry.Subject,
		Body:          inquiry.Body,
		CreatedAtText: inquiry.CreatedAt.In(s.location).Format("2006-01-02 15:04 MST"),
		CurrentYear:   time.Now().In(s.location).Year(),
	}

	if facility.Email != "" {
		subject, plain, html := s.composeInquiryEmail(data)
		if err := s.sender.SendEmail(facility.Email, facility.Name, subject, plain, html); err != nil {
			log.Printf("ALERT: inquiry %s email to facility %d failed: %v", inquiry.Code, facility.ID, err)
		}
	}

	if facility.Phone != "" {
		if err := s.sender.SendSMS(facility.Phone, composeInquirySMS(data)); err != nil {
			log.Printf("ALERT: inquiry %s SMS to facility %d failed: %v", inquiry.Code, facility.ID, err)
		}
	}
}

// senderName prefers the display name and falls back to the account email.
func senderName(c auth.Claims) string {
	if name := strings.TrimSpace(c.Name); name != "" {
		return name
	}
	return c.Email
}

func (s *SenderService) composeInquiryEmail(data entities.InquiryEmailData) (subject, plain, html string) {
	subject = fmt.Sprintf("New inquiry for %s - Ref: %s", data.FacilityName, data.InquiryCode)
	plain = fmt.Sprintf(
		"Hello %s,\n\n%s (%s) sent you an inquiry on %s.\n\n"+
			"Reference: %s\n"+
			"Subject: %s\n\n"+
			"%s\n\n"+
			"CareBridge",
		data.FacilityName, data.SenderName, data.SenderRole, data.CreatedAtText,
		data.InquiryCode, data.Subject, data.Body,
	)

	var buf bytes.Buffer
	if err := inquiryEmailTemplate.Execute(&buf, data); err != nil {
		log.Printf("ALERT: error rendering inquiry email for %s: %v", data.InquiryCode, err)
		return subject, plain, ""
	}
	return subject, plain, buf.String()
}

func composeInquirySMS(data entities.InquiryEmailData) string {
	return fmt.Sprintf("CareBridge: new inquiry %q from a %s (ref %s). Details were sent by email.",
		data.Subject, data.SenderRole, data.InquiryCode)
}
