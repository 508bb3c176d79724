package aggregate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

func TestFilterMilkDateRanges(t *testing.T) {
	now := midnight(t, "2026-09-01")

	records := []models.MilkRecord{
		{CattleName: "Luna", ProductionDate: "2026-09-01", TotalLiters: 20},
		{CattleName: "Luna", ProductionDate: "2026-08-28", TotalLiters: 18},
		{CattleName: "Luna", ProductionDate: "2026-08-10", TotalLiters: 15},
		{CattleName: "Luna", ProductionDate: "2026-07-01", TotalLiters: 12},
	}

	today := FilterMilk(records, MilkFilter{DateRange: MilkRangeToday}, now)
	require.Len(t, today, 1)
	require.Equal(t, "2026-09-01", today[0].ProductionDate)

	week := FilterMilk(records, MilkFilter{DateRange: MilkRangeWeek}, now)
	require.Len(t, week, 2)

	month := FilterMilk(records, MilkFilter{DateRange: MilkRangeMonth}, now)
	require.Len(t, month, 3)

	all := FilterMilk(records, MilkFilter{DateRange: MilkRangeAll}, now)
	require.Len(t, all, 4)
}

func TestFilterMilkDefaultSortIsDateDesc(t *testing.T) {
	now := midnight(t, "2026-09-01")

	records := []models.MilkRecord{
		{ProductionDate: "2026-08-10"},
		{ProductionDate: "2026-08-28"},
		{ProductionDate: "2026-08-20"},
	}

	sorted := FilterMilk(records, MilkFilter{}, now)
	require.Equal(t, "2026-08-28", sorted[0].ProductionDate)
	require.Equal(t, "2026-08-20", sorted[1].ProductionDate)
	require.Equal(t, "2026-08-10", sorted[2].ProductionDate)
}

func TestMilkStatisticsEmpty(t *testing.T) {
	require.Equal(t, MilkStats{}, MilkStatistics(nil))
}

func TestMilkStatistics(t *testing.T) {
	records := []models.MilkRecord{
		{TotalLiters: 10},
		{TotalLiters: 20},
		{TotalLiters: 30},
		{TotalLiters: 40},
	}

	stats := MilkStatistics(records)

	require.Equal(t, 4, stats.RecordCount)
	require.Equal(t, 100.0, stats.TotalLiters)
	require.Equal(t, 25.0, stats.AverageLiters)
	require.Equal(t, 40.0, stats.MaxLiters)
	require.Equal(t, 10.0, stats.MinLiters)
	require.LessOrEqual(t, stats.MinLiters, stats.AverageLiters)
	require.LessOrEqual(t, stats.AverageLiters, stats.MaxLiters)

	// Second half (30,40) minus first half (10,20).
	require.Equal(t, 20.0, stats.Trend)
}

func TestMilkStatisticsTrendSingleRecord(t *testing.T) {
	stats := MilkStatistics([]models.MilkRecord{{TotalLiters: 15}})
	// First half is empty; no trend can be read from one record.
	require.Equal(t, 0.0, stats.Trend)
}

func TestMergeMilkSumsShiftsAndRecomputesTotal(t *testing.T) {
	existing := models.MilkRecord{
		ID: "abc", MorningLiters: 2, AfternoonLiters: 3, EveningLiters: 1,
		TotalLiters: 6, Notes: "first pass",
	}
	incoming := models.MilkRecord{MorningLiters: 1, AfternoonLiters: 1, EveningLiters: 1}

	merged := MergeMilk(existing, incoming)

	require.Equal(t, 3.0, merged.MorningLiters)
	require.Equal(t, 4.0, merged.AfternoonLiters)
	require.Equal(t, 2.0, merged.EveningLiters)
	require.Equal(t, 9.0, merged.TotalLiters)
	require.Equal(t, "first pass", merged.Notes)
}

func TestMergeMilkNotesReplacedOnlyWhenNonEmpty(t *testing.T) {
	existing := models.MilkRecord{Notes: "keep me"}

	require.Equal(t, "keep me", MergeMilk(existing, models.MilkRecord{Notes: "   "}).Notes)
	require.Equal(t, "replaced", MergeMilk(existing, models.MilkRecord{Notes: "replaced"}).Notes)
}
