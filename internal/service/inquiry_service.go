package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/repository"
)

const (
	InquiryStatusOpen     = "open"
	InquiryStatusAnswered = "answered"
	InquiryStatusClosed   = "closed"
)

var inquiryTransitions = map[string][]string{
	InquiryStatusOpen:     {InquiryStatusAnswered, InquiryStatusClosed},
	InquiryStatusAnswered: {InquiryStatusClosed},
}

type InquiryService struct {
	inquiries  repository.InquiryRepository
	facilities repository.FacilityRepository
	notifier   InquiryNotifier
	now        func() time.Time
	newCode    func() string
}

func NewInquiryService(inquiries repository.InquiryRepository, facilities repository.FacilityRepository, notifier InquiryNotifier) *InquiryService {
	return &InquiryService{
		inquiries:  inquiries,
		facilities: facilities,
		notifier:   notifier,
		now:        time.Now,
		newCode:    uuid.NewString,
	}
}

func (s *InquiryService) CreateInquiry(actor *auth.Claims, req entities.InquiryRequest) (*entities.InquiryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	facility, err := s.facilities.GetFacilityByID(req.FacilityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound(fmt.Sprintf("facility %d not found", req.FacilityID))
		}
		return nil, err
	}

	now := s.now().UTC()
	inquiry := &db.Inquiry{
		Code:       s.newCode(),
		FacilityID: req.FacilityID,
		SenderID:   actor.UserID,
		Subject:    req.Subject,
		Body:       req.Body,
		Status:     InquiryStatusOpen,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.inquiries.CreateInquiry(inquiry); err != nil {
		log.Printf("Error creating inquiry for facility %d: %v", req.FacilityID, err)
		return nil, err
	}

	if s.notifier != nil {
		go s.notifier.NotifyNewInquiry(*facility, *inquiry, *actor)
	}

	resp := inquiryResponse(*inquiry)
	return &resp, nil
}

// ListInquiries returns the inquiries visible to the actor: staff see their
// facility's inbox, admins see everything, everyone else sees what they sent.
func (s *InquiryService) ListInquiries(actor *auth.Claims) ([]entities.InquiryResponse, error) {
	var filter repository.InquiryFilter
	switch {
	case actor.Role == auth.RoleAdmin:
	case actor.Role == auth.RoleFacilityStaff && actor.FacilityID != nil:
		filter.FacilityID = *actor.FacilityID
	default:
		filter.SenderID = actor.UserID
	}

	inquiries, err := s.inquiries.ListInquiries(filter)
	if err != nil {
		return nil, err
	}
	return lo.Map(inquiries, func(i db.Inquiry, _ int) entities.InquiryResponse { return inquiryResponse(i) }), nil
}

func (s *InquiryService) UpdateInquiryStatus(actor *auth.Claims, id int, req entities.InquiryStatusRequest) (*entities.InquiryResponse, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	inquiry, err := s.inquiries.GetInquiryByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound(fmt.Sprintf("inquiry %d not found", id))
		}
		return nil, err
	}
	if !actor.ManagesFacility(inquiry.FacilityID) {
		return nil, apperrors.ErrForbidden("only staff of the facility can update this inquiry")
	}
	if !lo.Contains(inquiryTransitions[inquiry.Status], req.Status) {
		return nil, apperrors.ErrConflict(fmt.Sprintf("cannot move inquiry from %s to %s", inquiry.Status, req.Status))
	}

	now := s.now().UTC()
	if err := s.inquiries.UpdateInquiryStatus(id, req.Status, now); err != nil {
		return nil, err
	}
	inquiry.Status = req.Status
	inquiry.UpdatedAt = now

	resp := inquiryResponse(*inquiry)
	return &resp, nil
}

func inquiryResponse(i db.Inquiry) entities.InquiryResponse {
	return entities.InquiryResponse{
		ID:         i.ID,
		Code:       i.Code,
		FacilityID: i.FacilityID,
		SenderID:   i.SenderID,
		Subject:    i.Subject,
		Body:       i.Body,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
