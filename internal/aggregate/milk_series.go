package aggregate

import (
	"math"
	"time"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// DailyMilkPoint is one chart bucket of the per-day production series. For the
// herd-wide series CattleCount is the number of distinct animals milked that
// day and AverageLiters the per-animal mean; for a single-animal series
// CattleCount is 0 and AverageLiters carries the animal's historical average.
type DailyMilkPoint struct {
	Date            string  `json:"date"`
	TotalLiters     float64 `json:"totalLiters"`
	MorningLiters   float64 `json:"morningLiters"`
	AfternoonLiters float64 `json:"afternoonLiters"`
	EveningLiters   float64 `json:"eveningLiters"`
	CattleCount     int     `json:"cattleCount,omitempty"`
	AverageLiters   float64 `json:"averageLiters"`
}

// DailyHerdSeries buckets all production records into one point per calendar
// day over the trailing days window ending at now.
func DailyHerdSeries(records []models.MilkRecord, days int, now time.Time) []DailyMilkPoint {
	series := make([]DailyMilkPoint, 0, days)
	for i := 0; i < days; i++ {
		date := models.FormatCalDate(now.AddDate(0, 0, -(days - 1 - i)))
		point := DailyMilkPoint{Date: date}

		milked := map[string]struct{}{}
		for _, rec := range records {
			if rec.ProductionDate != date {
				continue
			}
			point.TotalLiters += rec.TotalLiters
			point.MorningLiters += rec.MorningLiters
			point.AfternoonLiters += rec.AfternoonLiters
			point.EveningLiters += rec.EveningLiters
			milked[rec.CattleID] = struct{}{}
		}

		point.CattleCount = len(milked)
		if point.CattleCount > 0 {
			point.AverageLiters = point.TotalLiters / float64(point.CattleCount)
		}
		series = append(series, point)
	}
	return series
}

// DailyCattleSeries buckets one animal's production into one point per day.
// Days without a record become zero points so charts keep a continuous axis.
func DailyCattleSeries(records []models.MilkRecord, cattleID string, historicalAverage float64, days int, now time.Time) []DailyMilkPoint {
	series := make([]DailyMilkPoint, 0, days)
	for i := 0; i < days; i++ {
		date := models.FormatCalDate(now.AddDate(0, 0, -(days - 1 - i)))
		point := DailyMilkPoint{Date: date, AverageLiters: historicalAverage}

		for _, rec := range records {
			if rec.CattleID == cattleID && rec.ProductionDate == date {
				point.TotalLiters = rec.TotalLiters
				point.MorningLiters = rec.MorningLiters
				point.AfternoonLiters = rec.AfternoonLiters
				point.EveningLiters = rec.EveningLiters
				break
			}
		}
		series = append(series, point)
	}
	return series
}

// TrendDirection is a coarse directional indicator, not a regression.
type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

// DailyTrend compares the mean of the last three daily totals against the
// three days before them.
type DailyTrend struct {
	Direction  TrendDirection `json:"direction"`
	Change     float64        `json:"change"`
	Percentage float64        `json:"percentage"`
}

// SeriesTrend computes the coarse trend of a daily series. Fewer than two
// points, or a zero baseline, reads as stable.
func SeriesTrend(series []DailyMilkPoint) DailyTrend {
	if len(series) < 2 {
		return DailyTrend{Direction: TrendStable}
	}

	recent := windowMean(series, len(series)-3, len(series))
	previous := windowMean(series, len(series)-6, len(series)-3)
	if previous == 0 {
		return DailyTrend{Direction: TrendStable}
	}

	trend := DailyTrend{Direction: TrendStable}
	trend.Change = recent - previous
	trend.Percentage = trend.Change / previous * 100
	if math.Abs(trend.Percentage) > 5 {
		if trend.Percentage > 0 {
			trend.Direction = TrendUp
		} else {
			trend.Direction = TrendDown
		}
	}
	return trend
}

// windowMean averages TotalLiters over series[from:to), always dividing by
// three to mirror the dashboard's fixed three-day windows.
func windowMean(series []DailyMilkPoint, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to < from {
		to = from
	}
	var sum float64
	for _, p := range series[from:to] {
		sum += p.TotalLiters
	}
	return sum / 3
}
