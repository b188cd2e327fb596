package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"carebridge/internal/auth"
)

type Handlers struct {
	Auth            *AuthHandler
	Recommendations *RecommendationHandler
	Availability    *AvailabilityHandler
	Inquiries       *InquiryHandler
}

func NewRouter(h Handlers, jwtSecret string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	// Public endpoints
	r.HandleFunc("/api/auth/register", h.Auth.Register).Methods("POST")
	r.HandleFunc("/api/auth/login", h.Auth.Login).Methods("POST")

	// Authenticated endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.Use(auth.Authenticate(jwtSecret))

	api.HandleFunc("/facilities", h.Recommendations.SearchFacilities).Methods("GET")
	api.HandleFunc("/facilities/{id:[0-9]+}", h.Recommendations.GetFacility).Methods("GET")

	api.Handle("/facilities/{id:[0-9]+}/reports",
		auth.RequireRole(auth.RoleFacilityStaff, auth.RoleAdmin)(http.HandlerFunc(h.Availability.SubmitReport))).Methods("POST")
	api.Handle("/facilities/{id:[0-9]+}/notes",
		auth.RequireRole(auth.RoleSupporter, auth.RoleFacilityStaff, auth.RoleAdmin)(http.HandlerFunc(h.Availability.ListNotes))).Methods("GET")
	api.Handle("/facilities/{id:[0-9]+}/notes",
		auth.RequireRole(auth.RoleSupporter, auth.RoleAdmin)(http.HandlerFunc(h.Availability.SubmitNote))).Methods("POST")

	api.HandleFunc("/inquiries", h.Inquiries.CreateInquiry).Methods("POST")
	api.HandleFunc("/inquiries", h.Inquiries.ListInquiries).Methods("GET")
	api.Handle("/inquiries/{id:[0-9]+}/status",
		auth.RequireRole(auth.RoleFacilityStaff, auth.RoleAdmin)(http.HandlerFunc(h.Inquiries.UpdateInquiryStatus))).Methods("PUT")

	return r
}
