package api

import (
	"net/http"

	"carebridge/internal/auth"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/service"
)

type AvailabilityHandler struct {
	Service *service.AvailabilityService
}

func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

func (h *AvailabilityHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthorized("Unauthorized"))
		return
	}
	facilityID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req entities.AvailabilityReportRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.Service.SubmitReport(claims, facilityID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, report)
}

func (h *AvailabilityHandler) SubmitNote(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthorized("Unauthorized"))
		return
	}
	facilityID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req entities.AvailabilityNoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	note, err := h.Service.SubmitNote(claims, facilityID, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *AvailabilityHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	facilityID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	notes, err := h.Service.ListActiveNotes(facilityID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, notes)
}
