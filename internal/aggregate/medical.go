package aggregate

import (
	"strings"
	"time"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// Checkups due within this window count as upcoming.
const upcomingCheckupWindow = 7 * 24 * time.Hour

// MedicalFilter holds the observation filters; each dimension toggles
// independently and defaults to matching everything.
type MedicalFilter struct {
	Search   string
	CattleID string
	Type     string
	Status   string
	Severity string
}

// FilterObservations returns the observations matching all filter dimensions.
// Search matches animal name, symptoms, diagnosis or medication.
func FilterObservations(observations []models.MedicalObservation, f MedicalFilter) []models.MedicalObservation {
	search := strings.ToLower(f.Search)

	filtered := make([]models.MedicalObservation, 0, len(observations))
	for _, obs := range observations {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(obs.CattleName), search) ||
			strings.Contains(strings.ToLower(obs.Symptoms), search) ||
			strings.Contains(strings.ToLower(obs.Diagnosis), search) ||
			strings.Contains(strings.ToLower(obs.Medication), search)

		matchesCattle := matchesAll(f.CattleID) || obs.CattleID == f.CattleID
		matchesType := matchesAll(f.Type) || string(obs.Type) == f.Type
		matchesStatus := matchesAll(f.Status) || string(obs.Status) == f.Status
		matchesSeverity := matchesAll(f.Severity) || string(obs.Severity) == f.Severity

		if matchesSearch && matchesCattle && matchesType && matchesStatus && matchesSeverity {
			filtered = append(filtered, obs)
		}
	}
	return filtered
}

// MedicalStats aggregates the medical history headline figures. TotalCost sums
// over ALL observations, not just the currently visible ones; narrowing a
// filter never changes the displayed total spend.
type MedicalStats struct {
	TotalObservations  int     `json:"totalObservations"`
	ActiveObservations int     `json:"activeObservations"`
	UpcomingCheckups   int     `json:"upcomingCheckups"`
	TotalCost          float64 `json:"totalCost"`
}

// MedicalStatistics reduces the full observation collection. An upcoming
// checkup is strictly after now and at most seven days ahead.
func MedicalStatistics(observations []models.MedicalObservation, now time.Time) MedicalStats {
	stats := MedicalStats{TotalObservations: len(observations)}
	horizon := now.Add(upcomingCheckupWindow)

	for _, obs := range observations {
		stats.TotalCost += obs.Cost
		if obs.Status == models.StatusActive {
			stats.ActiveObservations++
		}
		if obs.NextCheckup != nil && obs.NextCheckup.After(now) && !obs.NextCheckup.After(horizon) {
			stats.UpcomingCheckups++
		}
	}
	return stats
}
