package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

func midnight(t *testing.T, date string) time.Time {
	t.Helper()
	parsed, err := models.ParseCalDate(date)
	require.NoError(t, err)
	return parsed
}

func TestSummarizeEmptyHerd(t *testing.T) {
	require.Equal(t, HerdSummary{}, Summarize(nil))
}

func TestSummarize(t *testing.T) {
	cattle := []models.Cattle{
		{Name: "Luna", HealthStatus: models.HealthHealthy, LastWeight: 500, TodayMilkProduction: 20, PregnancyDueDate: "2026-09-20", Sex: models.SexFemale},
		{Name: "Estrella", HealthStatus: models.HealthSick, LastWeight: 420, TodayMilkProduction: 10},
		{Name: "Canela", HealthStatus: models.HealthTreatment, LastWeight: 610},
	}

	summary := Summarize(cattle)

	require.Equal(t, 3, summary.TotalCattle)
	require.Equal(t, 1, summary.PregnantCattle)
	require.Equal(t, 2, summary.NeedingAttention)
	require.Equal(t, 30.0, summary.TotalMilkToday)
	require.Equal(t, 420.0, summary.MinWeight)
	require.Equal(t, 610.0, summary.MaxWeight)
	require.Equal(t, 510, summary.AverageWeight)
	require.LessOrEqual(t, summary.MinWeight, float64(summary.AverageWeight))
	require.LessOrEqual(t, float64(summary.AverageWeight), summary.MaxWeight)
}

func TestUpcomingBirthsWindow(t *testing.T) {
	now := midnight(t, "2026-09-01")

	cattle := []models.Cattle{
		{Name: "in-ten-days", Sex: models.SexFemale, PregnancyDueDate: "2026-09-11"},
		{Name: "at-boundary", Sex: models.SexFemale, PregnancyDueDate: "2026-10-01"},
		{Name: "too-far", Sex: models.SexFemale, PregnancyDueDate: "2026-10-02"},
		{Name: "yesterday", Sex: models.SexFemale, PregnancyDueDate: "2026-08-31"},
		{Name: "today", Sex: models.SexFemale, PregnancyDueDate: "2026-09-01"},
		{Name: "not-pregnant", Sex: models.SexFemale},
	}

	upcoming := UpcomingBirths(cattle, now)

	require.Len(t, upcoming, 2)
	require.Equal(t, "in-ten-days", upcoming[0].Name)
	require.Equal(t, "at-boundary", upcoming[1].Name)
}

func TestNeedingWeightCheck(t *testing.T) {
	now := midnight(t, "2026-09-01")

	cattle := []models.Cattle{
		{Name: "due", LastWeightDate: "2026-08-02"},      // 30 days ago
		{Name: "not-yet", LastWeightDate: "2026-08-03"},  // 29 days ago
		{Name: "long-due", LastWeightDate: "2026-01-01"}, // far overdue
		{Name: "never-weighed"},
	}

	due := NeedingWeightCheck(cattle, now)

	require.Len(t, due, 2)
	require.Equal(t, "due", due[0].Name)
	require.Equal(t, "long-due", due[1].Name)
}

func TestNeedingWeightCheckIgnoresTimeOfDay(t *testing.T) {
	// Midday: only the calendar-day difference may count.
	now := midnight(t, "2026-09-01").Add(12 * time.Hour)

	cattle := []models.Cattle{
		{Name: "29-days-ago", LastWeightDate: "2026-08-03"},
		{Name: "30-days-ago", LastWeightDate: "2026-08-02"},
	}

	due := NeedingWeightCheck(cattle, now)

	require.Len(t, due, 1)
	require.Equal(t, "30-days-ago", due[0].Name)
}
