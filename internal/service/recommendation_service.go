package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/samber/lo"

	"carebridge/internal/db"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/repository"
	"carebridge/internal/utils"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type RecommendationService struct {
	facilities   repository.FacilityRepository
	availability repository.AvailabilityRepository
	now          func() time.Time
}

func NewRecommendationService(facilities repository.FacilityRepository, availability repository.AvailabilityRepository) *RecommendationService {
	return &RecommendationService{
		facilities:   facilities,
		availability: availability,
		now:          time.Now,
	}
}

func (s *RecommendationService) GetRecommendation(facilityID int) (*entities.FacilityRecommendation, error) {
	facility, err := s.facilities.GetFacilityByID(facilityID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrNotFound(fmt.Sprintf("facility %d not found", facilityID))
		}
		return nil, err
	}

	now := s.now().UTC()
	report, err := s.availability.GetLatestReport(facilityID, now)
	if err != nil {
		return nil, err
	}
	notes, err := s.availability.ListActiveNotes(facilityID, now, scoredNoteLimit)
	if err != nil {
		return nil, err
	}

	rec := buildRecommendation(*facility, report, notes)
	return &rec, nil
}

// SearchRecommendations scores one page of matching facilities and ranks it
// by availability. Facilities with no information sort last.
func (s *RecommendationService) SearchRecommendations(filter entities.FacilitySearchFilter) (*entities.RecommendationsList, error) {
	filter = normalizeSearchFilter(filter)

	facilities, total, err := s.facilities.SearchFacilities(filter)
	if err != nil {
		log.Printf("Error searching facilities: %v", err)
		return nil, err
	}

	ids := lo.Map(facilities, func(f db.Facility, _ int) int { return f.ID })
	now := s.now().UTC()

	reports, err := s.availability.GetLatestReports(ids, now)
	if err != nil {
		return nil, err
	}
	notes, err := s.availability.ListActiveNotesForFacilities(ids, now, scoredNoteLimit)
	if err != nil {
		return nil, err
	}

	recs := make([]entities.FacilityRecommendation, 0, len(facilities))
	for _, f := range facilities {
		recs = append(recs, buildRecommendation(f, reports[f.ID], notes[f.ID]))
	}
	rankRecommendations(recs)

	return &entities.RecommendationsList{
		Total:      total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
		Facilities: recs,
	}, nil
}

func normalizeSearchFilter(filter entities.FacilitySearchFilter) entities.FacilitySearchFilter {
	filter.ServiceType = utils.NormalizeServiceType(filter.ServiceType)
	if filter.Limit <= 0 {
		filter.Limit = defaultSearchLimit
	}
	if filter.Limit > maxSearchLimit {
		filter.Limit = maxSearchLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return filter
}

func buildRecommendation(f db.Facility, report *db.FacilityAvailabilityReport, notes []db.SupporterAvailabilityNote) entities.FacilityRecommendation {
	return entities.FacilityRecommendation{
		ID:             f.ID,
		Name:           f.Name,
		ServiceTypes:   f.ServiceTypes,
		Prefecture:     f.Prefecture,
		City:           f.City,
		Address:        f.Address,
		Phone:          f.Phone,
		Email:          f.Email,
		Capacity:       f.Capacity,
		Availability:   ScoreAvailability(report, notes),
		FacilityReport: reportView(report),
		SupporterNotes: noteViews(notes),
	}
}

func rankRecommendations(recs []entities.FacilityRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := recs[i].Availability.Score, recs[j].Availability.Score
		switch {
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		case a != nil && b != nil && *a != *b:
			return *a > *b
		}
		return recs[i].Name < recs[j].Name
	})
}
