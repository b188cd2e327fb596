package entities

type RecommendationsList struct {
	Total      int64                    `json:"total"`
	Limit      int                      `json:"limit"`
	Offset     int                      `json:"offset"`
	Facilities []FacilityRecommendation `json:"facilities"`
}
