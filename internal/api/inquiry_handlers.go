package api

import (
	"net/http"

	"carebridge/internal/auth"
	"carebridge/internal/entities"
	apperrors "carebridge/internal/errors"
	"carebridge/internal/service"
)

type InquiryHandler struct {
	Service *service.InquiryService
}

func NewInquiryHandler(svc *service.InquiryService) *InquiryHandler {
	return &InquiryHandler{Service: svc}
}

func (h *InquiryHandler) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthorized("Unauthorized"))
		return
	}
	var req entities.InquiryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	inquiry, err := h.Service.CreateInquiry(claims, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, inquiry)
}

func (h *InquiryHandler) ListInquiries(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthorized("Unauthorized"))
		return
	}
	inquiries, err := h.Service.ListInquiries(claims)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

func (h *InquiryHandler) UpdateInquiryStatus(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, r, apperrors.ErrUnauthorized("Unauthorized"))
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req entities.InquiryStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	inquiry, err := h.Service.UpdateInquiryStatus(claims, id, req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}
