package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

func sampleObservations(now time.Time) []models.MedicalObservation {
	soon := now.Add(3 * 24 * time.Hour)
	far := now.Add(8 * 24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	return []models.MedicalObservation{
		{CattleID: "a", CattleName: "Luna", Type: models.ObservationIllness, Status: models.StatusActive, Severity: models.SeverityModerate, Symptoms: "fiebre alta", Cost: 120, NextCheckup: &soon},
		{CattleID: "b", CattleName: "Canela", Type: models.ObservationVaccination, Status: models.StatusCompleted, Severity: models.SeverityMild, Cost: 40, NextCheckup: &far},
		{CattleID: "a", CattleName: "Luna", Type: models.ObservationCheckup, Status: models.StatusCompleted, Severity: models.SeverityMild, Diagnosis: "sin hallazgos", Cost: 60, NextCheckup: &past},
	}
}

func TestFilterObservations(t *testing.T) {
	now := midnight(t, "2026-09-01")
	observations := sampleObservations(now)

	bySearch := FilterObservations(observations, MedicalFilter{Search: "fiebre"})
	require.Len(t, bySearch, 1)
	require.Equal(t, models.ObservationIllness, bySearch[0].Type)

	byCattle := FilterObservations(observations, MedicalFilter{CattleID: "a"})
	require.Len(t, byCattle, 2)

	byStatus := FilterObservations(observations, MedicalFilter{Status: "completed"})
	require.Len(t, byStatus, 2)

	combined := FilterObservations(observations, MedicalFilter{CattleID: "a", Severity: "mild"})
	require.Len(t, combined, 1)

	all := FilterObservations(observations, MedicalFilter{CattleID: FilterAll, Type: FilterAll})
	require.Len(t, all, 3)
}

func TestMedicalStatistics(t *testing.T) {
	now := midnight(t, "2026-09-01")
	observations := sampleObservations(now)

	stats := MedicalStatistics(observations, now)

	require.Equal(t, 3, stats.TotalObservations)
	require.Equal(t, 1, stats.ActiveObservations)
	require.Equal(t, 220.0, stats.TotalCost)
	// Only the checkup within the seven-day horizon counts; the past one and
	// the one eight days out do not.
	require.Equal(t, 1, stats.UpcomingCheckups)
}

func TestMedicalStatisticsCostIgnoresFilters(t *testing.T) {
	now := midnight(t, "2026-09-01")
	observations := sampleObservations(now)

	full := MedicalStatistics(observations, now)
	filtered := FilterObservations(observations, MedicalFilter{CattleID: "a"})

	// The dashboard always reduces the unfiltered collection.
	require.NotEqual(t, len(observations), len(filtered))
	require.Equal(t, 220.0, full.TotalCost)
}

func TestMedicalStatisticsCheckupBoundary(t *testing.T) {
	now := midnight(t, "2026-09-01")
	exactly := now.Add(7 * 24 * time.Hour)
	atNow := now

	observations := []models.MedicalObservation{
		{NextCheckup: &exactly},
		{NextCheckup: &atNow},
		{},
	}

	stats := MedicalStatistics(observations, now)
	require.Equal(t, 1, stats.UpcomingCheckups)
}
