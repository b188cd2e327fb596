package entities

// FacilityRecommendation is the read model returned by facility search and detail views.
type FacilityRecommendation struct {
	ID             int                     `json:"id"`
	Name           string                  `json:"name"`
	ServiceTypes   []string                `json:"service_types"`
	Prefecture     string                  `json:"prefecture"`
	City           string                  `json:"city"`
	Address        string                  `json:"address"`
	Phone          string                  `json:"phone,omitempty"`
	Email          string                  `json:"email,omitempty"`
	Capacity       int                     `json:"capacity"`
	Availability   AvailabilitySummary     `json:"availability"`
	FacilityReport *AvailabilityReportView `json:"facility_report"`
	SupporterNotes []AvailabilityNoteView  `json:"supporter_notes"`
}
