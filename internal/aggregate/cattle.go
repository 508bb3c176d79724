// Package aggregate is the pure, stateless derived-metrics layer. Every
// function operates on collections already materialized in memory and performs
// no I/O; given the same inputs it always produces the same outputs. Callers
// pass the reference time explicitly so date arithmetic stays deterministic.
package aggregate

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// FilterAll matches every value of a filter dimension.
const FilterAll = "all"

// CattleSort enumerates the supported cattle list orderings.
type CattleSort string

const (
	CattleSortName       CattleSort = "name"
	CattleSortAge        CattleSort = "age"
	CattleSortProduction CattleSort = "production"
	CattleSortWeight     CattleSort = "weight"
)

// CattleFilter holds the cattle list filter and sort parameters. Empty or
// "all" values match everything.
type CattleFilter struct {
	Search       string
	Breed        string
	HealthStatus string
	SortBy       CattleSort
}

// FilterCattle returns the ordered subsequence of animals matching all filter
// dimensions. Search is a case-insensitive substring match on name OR breed;
// breed and health status are equality filters.
func FilterCattle(cattle []models.Cattle, f CattleFilter) []models.Cattle {
	search := strings.ToLower(f.Search)

	filtered := make([]models.Cattle, 0, len(cattle))
	for _, c := range cattle {
		matchesSearch := search == "" ||
			strings.Contains(strings.ToLower(c.Name), search) ||
			strings.Contains(strings.ToLower(c.Breed), search)
		matchesBreed := matchesAll(f.Breed) || c.Breed == f.Breed
		matchesStatus := matchesAll(f.HealthStatus) || string(c.HealthStatus) == f.HealthStatus

		if matchesSearch && matchesBreed && matchesStatus {
			filtered = append(filtered, c)
		}
	}

	sortCattle(filtered, f.SortBy)
	return filtered
}

func sortCattle(cattle []models.Cattle, by CattleSort) {
	switch by {
	case CattleSortName:
		// The herd is managed in Spanish; collate the way the UI compares.
		col := collate.New(language.Spanish, collate.IgnoreCase)
		sort.SliceStable(cattle, func(i, j int) bool {
			return col.CompareString(cattle[i].Name, cattle[j].Name) < 0
		})
	case CattleSortAge:
		// Chronological ascending by birth date, unparseable dates first.
		sort.SliceStable(cattle, func(i, j int) bool {
			ti, _ := models.ParseCalDate(cattle[i].BirthDate)
			tj, _ := models.ParseCalDate(cattle[j].BirthDate)
			return ti.Before(tj)
		})
	case CattleSortProduction:
		sort.SliceStable(cattle, func(i, j int) bool {
			return cattle[i].TodayMilkProduction > cattle[j].TodayMilkProduction
		})
	case CattleSortWeight:
		sort.SliceStable(cattle, func(i, j int) bool {
			return cattle[i].LastWeight > cattle[j].LastWeight
		})
	}
}

// Breeds returns the distinct breed values across the full collection in
// first-seen order, for populating the breed filter control.
func Breeds(cattle []models.Cattle) []string {
	seen := make(map[string]struct{}, len(cattle))
	var breeds []string
	for _, c := range cattle {
		if _, ok := seen[c.Breed]; ok {
			continue
		}
		seen[c.Breed] = struct{}{}
		breeds = append(breeds, c.Breed)
	}
	return breeds
}

// AgeInMonths returns the animal's age in whole calendar months at now, or 0
// when the birth date cannot be parsed.
func AgeInMonths(birthDate string, now time.Time) int {
	birth, err := models.ParseCalDate(birthDate)
	if err != nil {
		return 0
	}
	return (now.Year()-birth.Year())*12 + int(now.Month()) - int(birth.Month())
}

// AgeLabel renders the age the way the herd list displays it: months below one
// year ("8m"), whole years after ("3a").
func AgeLabel(birthDate string, now time.Time) string {
	months := AgeInMonths(birthDate, now)
	if months < 12 {
		return fmt.Sprintf("%dm", months)
	}
	return fmt.Sprintf("%da", months/12)
}

// DaysUntilBirth returns the ceiling of the calendar-day difference between
// now and the pregnancy due date. Negative values mean the date has passed.
func DaysUntilBirth(dueDate string, now time.Time) (int, error) {
	due, err := models.ParseCalDate(dueDate)
	if err != nil {
		return 0, err
	}
	return int(math.Ceil(due.Sub(now).Hours() / 24)), nil
}

func matchesAll(value string) bool {
	return value == "" || value == FilterAll
}
