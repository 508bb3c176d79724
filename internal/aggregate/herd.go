package aggregate

import (
	"math"
	"time"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// Animals whose due date falls within this many days count as upcoming births;
// animals unweighed for at least this many days need a weight check.
const (
	upcomingBirthWindowDays = 30
	weightCheckOverdueDays  = 30
)

// HerdSummary aggregates the whole-herd dashboard figures.
type HerdSummary struct {
	TotalCattle      int     `json:"totalCattle"`
	PregnantCattle   int     `json:"pregnantCattle"`
	TotalMilkToday   float64 `json:"totalMilkToday"`
	NeedingAttention int     `json:"needingAttention"`
	AverageWeight    int     `json:"averageWeight"`
	MinWeight        float64 `json:"minWeight"`
	MaxWeight        float64 `json:"maxWeight"`
}

// Summarize reduces the full animal collection to herd-level statistics. An
// empty collection yields all-zero results.
func Summarize(cattle []models.Cattle) HerdSummary {
	summary := HerdSummary{TotalCattle: len(cattle)}

	var weightSum float64
	for i, c := range cattle {
		if c.IsPregnant() {
			summary.PregnantCattle++
		}
		if c.HealthStatus != models.HealthHealthy {
			summary.NeedingAttention++
		}
		summary.TotalMilkToday += c.TodayMilkProduction
		weightSum += c.LastWeight

		if i == 0 || c.LastWeight < summary.MinWeight {
			summary.MinWeight = c.LastWeight
		}
		if i == 0 || c.LastWeight > summary.MaxWeight {
			summary.MaxWeight = c.LastWeight
		}
	}

	if summary.TotalCattle > 0 {
		summary.AverageWeight = int(math.Round(weightSum / float64(summary.TotalCattle)))
	}

	return summary
}

// UpcomingBirths returns the animals whose pregnancy due date is strictly in
// the future and at most 30 days away.
func UpcomingBirths(cattle []models.Cattle, now time.Time) []models.Cattle {
	var upcoming []models.Cattle
	for _, c := range cattle {
		if !c.IsPregnant() {
			continue
		}
		days, err := DaysUntilBirth(c.PregnancyDueDate, now)
		if err != nil {
			continue
		}
		if days > 0 && days <= upcomingBirthWindowDays {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming
}

// NeedingWeightCheck returns the animals whose last weigh-in is 30 or more
// days old. Animals with no recorded weigh-in date are skipped.
func NeedingWeightCheck(cattle []models.Cattle, now time.Time) []models.Cattle {
	// Compare calendar dates, not instants: an afternoon `now` must not round
	// a 29-day-old weigh-in up to 30.
	today, err := models.ParseCalDate(models.FormatCalDate(now))
	if err != nil {
		return nil
	}

	var due []models.Cattle
	for _, c := range cattle {
		if c.LastWeightDate == "" {
			continue
		}
		last, err := models.ParseCalDate(c.LastWeightDate)
		if err != nil {
			continue
		}
		days := int(math.Ceil(today.Sub(last).Hours() / 24))
		if days >= weightCheckOverdueDays {
			due = append(due, c)
		}
	}
	return due
}
