package service

import (
	"math"

	"carebridge/internal/db"
	"carebridge/internal/entities"
)

// Weights of the two signals. scoreDivisor is their sum and brings the
// combined value back onto 0..1.
const (
	facilityReportWeight = 0.7
	supporterNotesWeight = 0.4
	scoreDivisor         = facilityReportWeight + supporterNotesWeight
)

// Bucket thresholds for the combined score. Independent of Numeric().
const (
	availableThreshold = 0.66
	limitedThreshold   = 0.33
)

// ScoreAvailability blends the facility's own report with the supporter notes
// it is given. Callers are responsible for limiting notes to the most recent ones.
func ScoreAvailability(report *db.FacilityAvailabilityReport, notes []db.SupporterAvailabilityNote) entities.AvailabilitySummary {
	if report == nil && len(notes) == 0 {
		return entities.AvailabilitySummary{}
	}

	var facilityComponent float64
	if report != nil {
		facilityComponent = facilityReportWeight * report.Status.Numeric()
	}

	var supporterAverage float64
	if len(notes) > 0 {
		var sum float64
		for _, n := range notes {
			sum += n.Status.Numeric()
		}
		supporterAverage = sum / float64(len(notes))
	}

	combined := math.Min((facilityComponent+supporterAverage*supporterNotesWeight)/scoreDivisor, 1.0)
	status := statusFromScore(combined)
	percent := int(math.Round(combined * 100))

	return entities.AvailabilitySummary{
		Status:  &status,
		Score:   &combined,
		Percent: &percent,
	}
}

func statusFromScore(score float64) entities.AvailabilityStatus {
	switch {
	case score >= availableThreshold:
		return entities.StatusAvailable
	case score >= limitedThreshold:
		return entities.StatusLimited
	default:
		return entities.StatusUnavailable
	}
}
