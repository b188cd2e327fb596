package api

import (
	"net/http"
	"strconv"

	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/service"
)

type RecommendationHandler struct {
	Service *service.RecommendationService
}

func NewRecommendationHandler(svc *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{Service: svc}
}

// SearchFacilities handles GET /api/facilities?service_type=&prefecture=&limit=&offset=
func (h *RecommendationHandler) SearchFacilities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entities.FacilitySearchFilter{
		ServiceType: q.Get("service_type"),
		Prefecture:  q.Get("prefecture"),
	}

	var err error
	if filter.Limit, err = queryInt(q.Get("limit")); err != nil {
		writeError(w, r, apperrors.ErrBadRequest("Invalid limit"))
		return
	}
	if filter.Offset, err = queryInt(q.Get("offset")); err != nil {
		writeError(w, r, apperrors.ErrBadRequest("Invalid offset"))
		return
	}

	list, err := h.Service.SearchRecommendations(filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *RecommendationHandler) GetFacility(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	rec, err := h.Service.GetRecommendation(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func queryInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
