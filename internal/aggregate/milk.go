package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// MilkDateRange buckets production records relative to now.
type MilkDateRange string

const (
	MilkRangeAll   MilkDateRange = "all"
	MilkRangeToday MilkDateRange = "today"
	MilkRangeWeek  MilkDateRange = "week"
	MilkRangeMonth MilkDateRange = "month"
)

// MilkSort enumerates the supported milk history orderings.
type MilkSort string

const (
	MilkSortDateDesc       MilkSort = "date-desc"
	MilkSortDateAsc        MilkSort = "date-asc"
	MilkSortProductionDesc MilkSort = "production-desc"
	MilkSortProductionAsc  MilkSort = "production-asc"
	MilkSortCattle         MilkSort = "cattle"
)

// MilkFilter holds the milk history filter and sort parameters.
type MilkFilter struct {
	Search    string
	CattleID  string
	DateRange MilkDateRange
	SortBy    MilkSort
}

// FilterMilk returns the filtered, ordered production records. Search matches
// the denormalized animal name or breed case-insensitively; the date range is
// evaluated against now with inclusive boundaries.
func FilterMilk(records []models.MilkRecord, f MilkFilter, now time.Time) []models.MilkRecord {
	search := strings.ToLower(f.Search)

	filtered := make([]models.MilkRecord, 0, len(records))
	for _, rec := range records {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(rec.CattleName), search) ||
			strings.Contains(strings.ToLower(rec.CattleBreed), search)
		matchesCattle := matchesAll(f.CattleID) || rec.CattleID == f.CattleID

		if matchesSearch && matchesCattle && inMilkRange(rec.ProductionDate, f.DateRange, now) {
			filtered = append(filtered, rec)
		}
	}

	sortMilk(filtered, f.SortBy)
	return filtered
}

func inMilkRange(productionDate string, dateRange MilkDateRange, now time.Time) bool {
	switch dateRange {
	case MilkRangeToday:
		return productionDate == models.FormatCalDate(now)
	case MilkRangeWeek:
		return onOrAfter(productionDate, now.AddDate(0, 0, -7))
	case MilkRangeMonth:
		return onOrAfter(productionDate, now.AddDate(0, 0, -30))
	default:
		return true
	}
}

// onOrAfter reports whether the record's local-midnight calendar date is not
// before the boundary instant. Unparseable dates never match.
func onOrAfter(calDate string, boundary time.Time) bool {
	t, err := models.ParseCalDate(calDate)
	if err != nil {
		return false
	}
	return !t.Before(boundary)
}

func sortMilk(records []models.MilkRecord, by MilkSort) {
	switch by {
	case MilkSortDateAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ProductionDate < records[j].ProductionDate
		})
	case MilkSortProductionDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].TotalLiters > records[j].TotalLiters
		})
	case MilkSortProductionAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].TotalLiters < records[j].TotalLiters
		})
	case MilkSortCattle:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CattleName < records[j].CattleName
		})
	default: // MilkSortDateDesc
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].ProductionDate > records[j].ProductionDate
		})
	}
}

// MilkStats aggregates a filtered, ordered production sequence. Trend is the
// split-half average delta: mean of the second half minus mean of the first,
// split at the floor midpoint. Its sign depends on the current sort and is
// informational only.
type MilkStats struct {
	RecordCount   int     `json:"recordCount"`
	TotalLiters   float64 `json:"totalLiters"`
	AverageLiters float64 `json:"averageLiters"`
	MaxLiters     float64 `json:"maxLiters"`
	MinLiters     float64 `json:"minLiters"`
	Trend         float64 `json:"trend"`
}

// MilkStatistics reduces the given sequence; an empty input yields zeros.
func MilkStatistics(records []models.MilkRecord) MilkStats {
	stats := MilkStats{RecordCount: len(records)}
	if stats.RecordCount == 0 {
		return stats
	}

	for i, rec := range records {
		stats.TotalLiters += rec.TotalLiters
		if i == 0 || rec.TotalLiters > stats.MaxLiters {
			stats.MaxLiters = rec.TotalLiters
		}
		if i == 0 || rec.TotalLiters < stats.MinLiters {
			stats.MinLiters = rec.TotalLiters
		}
	}
	stats.AverageLiters = stats.TotalLiters / float64(stats.RecordCount)

	// A single record leaves the first half empty; trend stays 0 then.
	if mid := stats.RecordCount / 2; mid > 0 {
		stats.Trend = halfAverage(records[mid:]) - halfAverage(records[:mid])
	}
	return stats
}

func halfAverage(records []models.MilkRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.TotalLiters
	}
	return sum / float64(len(records))
}

// MergeMilk folds a newly submitted entry into the stored record for the same
// (cattleId, productionDate) pair: shift liters are summed, the total is
// recomputed from the merged shifts, and notes are replaced only when the new
// entry carries any.
func MergeMilk(existing, incoming models.MilkRecord) models.MilkRecord {
	merged := existing
	merged.MorningLiters += incoming.MorningLiters
	merged.AfternoonLiters += incoming.AfternoonLiters
	merged.EveningLiters += incoming.EveningLiters
	merged.TotalLiters = merged.ShiftSum()
	if strings.TrimSpace(incoming.Notes) != "" {
		merged.Notes = incoming.Notes
	}
	return merged
}
