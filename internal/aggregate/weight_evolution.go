package aggregate

import (
	"math"
	"sort"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// growthStandard drives the expected weight band: the band's min/max grow
// linearly with age in months until capped at the breed's adult weight.
type growthStandard struct {
	minBase     float64
	minPerMonth float64
	maxBase     float64
	maxPerMonth float64
	adultKg     float64
}

var growthStandards = map[string]growthStandard{
	"Holstein": {minBase: 40, minPerMonth: 25, maxBase: 50, maxPerMonth: 30, adultKg: 650},
	"Jersey":   {minBase: 30, minPerMonth: 18, maxBase: 40, maxPerMonth: 22, adultKg: 450},
	"Angus":    {minBase: 35, minPerMonth: 22, maxBase: 45, maxPerMonth: 28, adultKg: 600},
}

// Unrecognized breeds fall back to the Holstein curve.
const defaultGrowthBreed = "Holstein"

// WeightBand is the expected [min,max] weight range for a breed and age.
type WeightBand struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Target float64 `json:"target"`
}

// ExpectedWeightBand computes the band for a breed at a given age. The linear
// projections are capped at 90% of adult weight (min), adult weight (max) and
// 95% of adult weight (target).
func ExpectedWeightBand(breed string, ageMonths int) WeightBand {
	std, ok := growthStandards[breed]
	if !ok {
		std = growthStandards[defaultGrowthBreed]
	}

	rawMin := std.minBase + float64(ageMonths)*std.minPerMonth
	rawMax := std.maxBase + float64(ageMonths)*std.maxPerMonth

	return WeightBand{
		Min:    math.Min(rawMin, std.adultKg*0.9),
		Max:    math.Min(rawMax, std.adultKg),
		Target: math.Min((rawMin+rawMax)/2, std.adultKg*0.95),
	}
}

// BandStatus classifies a measurement against its expected band.
type BandStatus string

const (
	BandUnderweight BandStatus = "underweight"
	BandOverweight  BandStatus = "overweight"
	BandOptimal     BandStatus = "optimal"
)

// Classify places a weight relative to the band.
func (b WeightBand) Classify(weightKg float64) BandStatus {
	switch {
	case weightKg < b.Min:
		return BandUnderweight
	case weightKg > b.Max:
		return BandOverweight
	default:
		return BandOptimal
	}
}

// WeightPoint is one entry of an animal's weight evolution series.
type WeightPoint struct {
	Date         string     `json:"date"`
	WeightKg     float64    `json:"weightKg"`
	WeightChange float64    `json:"weightChange"`
	AgeMonths    int        `json:"ageMonths"`
	GainRate     float64    `json:"gainRate"`
	Band         WeightBand `json:"band"`
	Status       BandStatus `json:"status"`
	Notes        string     `json:"notes,omitempty"`
}

// WeightEvolution builds the chart series for a single animal: records sorted
// ascending by date, each annotated with age in months (floor of days/30),
// month-over-month gain rate ((Δkg/Δdays)×30, zero when the dates coincide)
// and the expected band classification.
func WeightEvolution(records []models.WeightRecord, birthDate, breed string) []WeightPoint {
	sorted := make([]models.WeightRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].WeightDate < sorted[j].WeightDate
	})

	birth, birthErr := models.ParseCalDate(birthDate)

	points := make([]WeightPoint, 0, len(sorted))
	for i, rec := range sorted {
		point := WeightPoint{Date: rec.WeightDate, WeightKg: rec.WeightKg, Notes: rec.Notes}
		if rec.WeightChange != nil {
			point.WeightChange = *rec.WeightChange
		}

		date, err := models.ParseCalDate(rec.WeightDate)
		if err == nil && birthErr == nil {
			point.AgeMonths = int(date.Sub(birth).Hours()/24) / 30
		}

		if i > 0 {
			prev := sorted[i-1]
			if prevDate, err2 := models.ParseCalDate(prev.WeightDate); err == nil && err2 == nil {
				daysDiff := int(date.Sub(prevDate).Hours() / 24)
				if daysDiff > 0 {
					point.GainRate = (rec.WeightKg - prev.WeightKg) / float64(daysDiff) * 30
				}
			}
		}

		point.Band = ExpectedWeightBand(breed, point.AgeMonths)
		point.Status = point.Band.Classify(rec.WeightKg)
		points = append(points, point)
	}
	return points
}

// TrendLabel is the coarse direction of an animal's weight series.
type TrendLabel string

const (
	TrendGaining TrendLabel = "gaining"
	TrendLosing  TrendLabel = "losing"
	TrendFlat    TrendLabel = "stable"
)

// Net change over the last three measurements must exceed this to count as a
// direction.
const trendThresholdKg = 5.0

// EvolutionSummary condenses a weight series into headline figures.
type EvolutionSummary struct {
	TotalGain       float64    `json:"totalGain"`
	AverageGainRate float64    `json:"averageGainRate"`
	Trend           TrendLabel `json:"trend"`
}

// SummarizeEvolution reduces an evolution series: total gain is last minus
// first weight, the average gain rate normalizes it to a 30-day month, and the
// trend looks only at the net change across the last three points.
func SummarizeEvolution(points []WeightPoint) EvolutionSummary {
	summary := EvolutionSummary{Trend: TrendFlat}
	if len(points) < 2 {
		return summary
	}

	first, last := points[0], points[len(points)-1]
	summary.TotalGain = last.WeightKg - first.WeightKg

	firstDate, err1 := models.ParseCalDate(first.Date)
	lastDate, err2 := models.ParseCalDate(last.Date)
	if err1 == nil && err2 == nil {
		totalDays := int(lastDate.Sub(firstDate).Hours() / 24)
		if totalDays > 0 {
			summary.AverageGainRate = summary.TotalGain / float64(totalDays) * 30
		}
	}

	recent := points
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	recentGain := recent[len(recent)-1].WeightKg - recent[0].WeightKg
	if math.Abs(recentGain) > trendThresholdKg {
		if recentGain > 0 {
			summary.Trend = TrendGaining
		} else {
			summary.Trend = TrendLosing
		}
	}

	return summary
}

// adultRange is the static adult-weight reference used by the history table.
type adultRange struct {
	min float64
	max float64
}

var adultRanges = map[string]adultRange{
	"Holstein":  {min: 550, max: 750},
	"Jersey":    {min: 350, max: 450},
	"Angus":     {min: 500, max: 700},
	"Brahman":   {min: 450, max: 650},
	"Charolais": {min: 600, max: 800},
	"Hereford":  {min: 500, max: 700},
}

var defaultAdultRange = adultRange{min: 400, max: 700}

// AdultWeightStatus labels a weight against the breed's static adult range.
type AdultWeightStatus string

const (
	AdultWeightLow    AdultWeightStatus = "low"
	AdultWeightNormal AdultWeightStatus = "normal"
	AdultWeightHigh   AdultWeightStatus = "high"
)

// ClassifyAdultWeight compares a measurement to the breed's adult range.
func ClassifyAdultWeight(weightKg float64, breed string) AdultWeightStatus {
	r, ok := adultRanges[breed]
	if !ok {
		r = defaultAdultRange
	}
	switch {
	case weightKg < r.min:
		return AdultWeightLow
	case weightKg > r.max:
		return AdultWeightHigh
	default:
		return AdultWeightNormal
	}
}
