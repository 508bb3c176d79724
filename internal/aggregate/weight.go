package aggregate

import (
	"sort"
	"strings"
	"time"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// WeightDateRange buckets weigh-ins relative to now.
type WeightDateRange string

const (
	WeightRangeAll     WeightDateRange = "all"
	WeightRangeMonth   WeightDateRange = "month"
	WeightRangeQuarter WeightDateRange = "quarter"
	WeightRangeYear    WeightDateRange = "year"
)

// WeightSort enumerates the supported weight history orderings.
type WeightSort string

const (
	WeightSortDateDesc   WeightSort = "date-desc"
	WeightSortDateAsc    WeightSort = "date-asc"
	WeightSortWeightDesc WeightSort = "weight-desc"
	WeightSortWeightAsc  WeightSort = "weight-asc"
	WeightSortChangeDesc WeightSort = "change-desc"
	WeightSortChangeAsc  WeightSort = "change-asc"
	WeightSortCattle     WeightSort = "cattle"
)

// WeightFilter holds the weight history filter and sort parameters.
type WeightFilter struct {
	Search    string
	CattleID  string
	DateRange WeightDateRange
	SortBy    WeightSort
}

// FilterWeights returns the filtered, ordered weigh-ins.
func FilterWeights(records []models.WeightRecord, f WeightFilter, now time.Time) []models.WeightRecord {
	search := strings.ToLower(f.Search)

	filtered := make([]models.WeightRecord, 0, len(records))
	for _, rec := range records {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(rec.CattleName), search) ||
			strings.Contains(strings.ToLower(rec.CattleBreed), search)
		matchesCattle := matchesAll(f.CattleID) || rec.CattleID == f.CattleID

		if matchesSearch && matchesCattle && inWeightRange(rec.WeightDate, f.DateRange, now) {
			filtered = append(filtered, rec)
		}
	}

	sortWeights(filtered, f.SortBy)
	return filtered
}

func inWeightRange(weightDate string, dateRange WeightDateRange, now time.Time) bool {
	switch dateRange {
	case WeightRangeMonth:
		return onOrAfter(weightDate, now.AddDate(0, 0, -30))
	case WeightRangeQuarter:
		return onOrAfter(weightDate, now.AddDate(0, 0, -90))
	case WeightRangeYear:
		return onOrAfter(weightDate, now.AddDate(0, 0, -365))
	default:
		return true
	}
}

func sortWeights(records []models.WeightRecord, by WeightSort) {
	change := func(rec models.WeightRecord) float64 {
		if rec.WeightChange == nil {
			return 0
		}
		return *rec.WeightChange
	}

	switch by {
	case WeightSortDateAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WeightDate < records[j].WeightDate
		})
	case WeightSortWeightDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WeightKg > records[j].WeightKg
		})
	case WeightSortWeightAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WeightKg < records[j].WeightKg
		})
	case WeightSortChangeDesc:
		sort.SliceStable(records, func(i, j int) bool {
			return change(records[i]) > change(records[j])
		})
	case WeightSortChangeAsc:
		sort.SliceStable(records, func(i, j int) bool {
			return change(records[i]) < change(records[j])
		})
	case WeightSortCattle:
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].CattleName < records[j].CattleName
		})
	default: // WeightSortDateDesc
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].WeightDate > records[j].WeightDate
		})
	}
}

// WeightStats aggregates a filtered weigh-in sequence. AverageChange and the
// change counters only consider records that carry a defined change value.
type WeightStats struct {
	TotalRecords    int     `json:"totalRecords"`
	AverageWeight   float64 `json:"averageWeight"`
	MaxWeight       float64 `json:"maxWeight"`
	MinWeight       float64 `json:"minWeight"`
	AverageChange   float64 `json:"averageChange"`
	PositiveChanges int     `json:"positiveChanges"`
	NegativeChanges int     `json:"negativeChanges"`
}

// WeightStatistics reduces the given sequence; an empty input yields zeros.
func WeightStatistics(records []models.WeightRecord) WeightStats {
	stats := WeightStats{TotalRecords: len(records)}
	if stats.TotalRecords == 0 {
		return stats
	}

	var weightSum, changeSum float64
	var withChange int
	for i, rec := range records {
		weightSum += rec.WeightKg
		if i == 0 || rec.WeightKg > stats.MaxWeight {
			stats.MaxWeight = rec.WeightKg
		}
		if i == 0 || rec.WeightKg < stats.MinWeight {
			stats.MinWeight = rec.WeightKg
		}

		if rec.WeightChange == nil {
			continue
		}
		withChange++
		changeSum += *rec.WeightChange
		if *rec.WeightChange > 0 {
			stats.PositiveChanges++
		}
		if *rec.WeightChange < 0 {
			stats.NegativeChanges++
		}
	}

	stats.AverageWeight = weightSum / float64(stats.TotalRecords)
	if withChange > 0 {
		stats.AverageChange = changeSum / float64(withChange)
	}
	return stats
}
