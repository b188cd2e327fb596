package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/samber/lo"

	"carebridge/internal/auth"
	"carebridge/internal/db"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/repository"
)

const (
	noteLifetime      = 30 * 24 * time.Hour
	defaultNoteIntent = "general"
	// scoredNoteLimit is how many of the newest active notes feed the score.
	scoredNoteLimit = 5
	listedNoteLimit = 20
)

type AvailabilityService struct {
	facilities   repository.FacilityRepository
	availability repository.AvailabilityRepository
	now          func() time.Time
}

func NewAvailabilityService(facilities repository.FacilityRepository, availability repository.AvailabilityRepository) *AvailabilityService {
	return &AvailabilityService{
		facilities:   facilities,
		availability: availability,
		now:          time.Now,
	}
}

// SubmitReport records a new facility self-report. Earlier reports stay in
// place and are superseded by ordering.
func (s *AvailabilityService) SubmitReport(actor *auth.Claims, facilityID int, req entities.AvailabilityReportRequest) (*entities.AvailabilityReportView, error) {
	if !actor.ManagesFacility(facilityID) {
		return nil, apperrors.ErrForbidden("only staff of this facility can report its availability")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.ensureFacility(facilityID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	validFrom := now
	if req.ValidFrom != nil {
		validFrom = req.ValidFrom.UTC()
	}
	var validUntil *time.Time
	if req.ValidUntil != nil {
		until := req.ValidUntil.UTC()
		if !until.After(validFrom) {
			return nil, apperrors.ErrBadRequest("valid_until must be after valid_from")
		}
		validUntil = &until
	}

	report := &db.FacilityAvailabilityReport{
		FacilityID:     facilityID,
		Status:         entities.ParseAvailabilityStatus(req.Status),
		ValidFrom:      validFrom,
		ValidUntil:     validUntil,
		Note:           req.Note,
		ContextSummary: req.ContextSummary,
		ContextItems:   req.ContextItems,
		Confidence:     req.Confidence,
		ReportedBy:     actor.UserID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.availability.CreateReport(report); err != nil {
		log.Printf("Error creating availability report for facility %d: %v", facilityID, err)
		return nil, err
	}
	log.Printf("Facility %d reported availability %q (report %d)", facilityID, report.Status, report.ID)
	return reportView(report), nil
}

// SubmitNote records a supporter's observation. Notes expire after 30 days.
func (s *AvailabilityService) SubmitNote(actor *auth.Claims, facilityID int, req entities.AvailabilityNoteRequest) (*entities.AvailabilityNoteView, error) {
	if actor.Role != auth.RoleSupporter && actor.Role != auth.RoleAdmin {
		return nil, apperrors.ErrForbidden("only supporters can leave availability notes")
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if err := s.ensureFacility(facilityID); err != nil {
		return nil, err
	}

	intent := req.Intent
	if intent == "" {
		intent = defaultNoteIntent
	}

	now := s.now().UTC()
	note := &db.SupporterAvailabilityNote{
		FacilityID:     facilityID,
		SupporterID:    actor.UserID,
		Status:         entities.ParseAvailabilityStatus(req.Status),
		Intent:         intent,
		Note:           req.Note,
		ContextSummary: req.ContextSummary,
		ContextItems:   req.ContextItems,
		PlanID:         req.PlanID,
		ClientID:       req.ClientID,
		ExpiresAt:      now.Add(noteLifetime),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.availability.CreateNote(note); err != nil {
		log.Printf("Error creating availability note for facility %d: %v", facilityID, err)
		return nil, err
	}
	view := noteView(*note)
	return &view, nil
}

func (s *AvailabilityService) ListActiveNotes(facilityID int) ([]entities.AvailabilityNoteView, error) {
	if err := s.ensureFacility(facilityID); err != nil {
		return nil, err
	}
	notes, err := s.availability.ListActiveNotes(facilityID, s.now().UTC(), listedNoteLimit)
	if err != nil {
		return nil, err
	}
	return noteViews(notes), nil
}

func (s *AvailabilityService) ensureFacility(facilityID int) error {
	if _, err := s.facilities.GetFacilityByID(facilityID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.ErrNotFound(fmt.Sprintf("facility %d not found", facilityID))
		}
		return err
	}
	return nil
}

func reportView(r *db.FacilityAvailabilityReport) *entities.AvailabilityReportView {
	if r == nil {
		return nil
	}
	return &entities.AvailabilityReportView{
		ID:             r.ID,
		Status:         r.Status,
		ValidFrom:      r.ValidFrom,
		ValidUntil:     r.ValidUntil,
		Note:           r.Note,
		ContextSummary: r.ContextSummary,
		ContextItems:   r.ContextItems,
		Confidence:     r.Confidence,
		CreatedAt:      r.CreatedAt,
	}
}

func noteView(n db.SupporterAvailabilityNote) entities.AvailabilityNoteView {
	return entities.AvailabilityNoteView{
		ID:             n.ID,
		SupporterID:    n.SupporterID,
		Status:         n.Status,
		Intent:         n.Intent,
		Note:           n.Note,
		ContextSummary: n.ContextSummary,
		ContextItems:   n.ContextItems,
		PlanID:         n.PlanID,
		ClientID:       n.ClientID,
		ExpiresAt:      n.ExpiresAt,
		CreatedAt:      n.CreatedAt,
	}
}

func noteViews(notes []db.SupporterAvailabilityNote) []entities.AvailabilityNoteView {
	return lo.Map(notes, func(n db.SupporterAvailabilityNote, _ int) entities.AvailabilityNoteView {
		return noteView(n)
	})
}
