package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	repo "github.com/mamadbah2/herdbook/internal/repository/sheets"
	"github.com/mamadbah2/herdbook/pkg/clients/notify"
)

const (
	reportRange     = "Reports!A:J"
	reportDateRange = "Reports!A:A"
)

// Store is the record-store surface the reporting service consumes.
type Store interface {
	ListCattle(ctx context.Context) ([]models.Cattle, error)
	ListMilk(ctx context.Context) ([]models.MilkRecord, error)
	ListObservations(ctx context.Context) ([]models.MedicalObservation, error)
}

// Service produces the scheduled herd report and the operational alerts that
// accompany it. The sheets repository may be nil; exports are then skipped.
type Service struct {
	store  Store
	sheets repo.Repository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(store Store, sheets repo.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, sheets: sheets, logger: logger}
}

// DailyReport is one scheduled snapshot of the herd.
type DailyReport struct {
	Date               string                `json:"date"`
	Herd               aggregate.HerdSummary `json:"herd"`
	TodayMilk          aggregate.MilkStats   `json:"todayMilk"`
	UpcomingBirths     int                   `json:"upcomingBirths"`
	WeightChecksDue    int                   `json:"weightChecksDue"`
	ActiveObservations int                   `json:"activeObservations"`
	UpcomingCheckups   int                   `json:"upcomingCheckups"`
}

// Summary renders the report as a short human-readable digest.
func (r DailyReport) Summary() string {
	return fmt.Sprintf(
		"Herd report %s: %d cattle (%d pregnant, %d needing attention). Milk today %.1f L across %d records. %d births and %d checkups upcoming, %d weight checks due.",
		r.Date, r.Herd.TotalCattle, r.Herd.PregnantCattle, r.Herd.NeedingAttention,
		r.TodayMilk.TotalLiters, r.TodayMilk.RecordCount,
		r.UpcomingBirths, r.UpcomingCheckups, r.WeightChecksDue)
}

// GenerateDailyReport assembles the snapshot for the given instant.
func (s *Service) GenerateDailyReport(ctx context.Context, now time.Time) (DailyReport, error) {
	cattle, err := s.store.ListCattle(ctx)
	if err != nil {
		return DailyReport{}, fmt.Errorf("load cattle for report: %w", err)
	}

	milk, err := s.store.ListMilk(ctx)
	if err != nil {
		return DailyReport{}, fmt.Errorf("load milk records for report: %w", err)
	}

	observations, err := s.store.ListObservations(ctx)
	if err != nil {
		return DailyReport{}, fmt.Errorf("load observations for report: %w", err)
	}

	today := aggregate.FilterMilk(milk, aggregate.MilkFilter{DateRange: aggregate.MilkRangeToday}, now)
	medStats := aggregate.MedicalStatistics(observations, now)

	return DailyReport{
		Date:               models.FormatCalDate(now),
		Herd:               aggregate.Summarize(cattle),
		TodayMilk:          aggregate.MilkStatistics(today),
		UpcomingBirths:     len(aggregate.UpcomingBirths(cattle, now)),
		WeightChecksDue:    len(aggregate.NeedingWeightCheck(cattle, now)),
		ActiveObservations: medStats.ActiveObservations,
		UpcomingCheckups:   medStats.UpcomingCheckups,
	}, nil
}

// ExportDaily appends the report as one spreadsheet row. A nil sheets
// repository means the export is disabled and the call is a no-op; a date
// already present in the sheet is not appended twice.
func (s *Service) ExportDaily(ctx context.Context, report DailyReport) error {
	if s.sheets == nil {
		s.logger.Debug("sheets export disabled, skipping report row")
		return nil
	}

	if s.alreadyExported(ctx, report.Date) {
		s.logger.Info("report row already present, skipping export", zap.String("date", report.Date))
		return nil
	}

	row := []interface{}{
		report.Date,
		report.Herd.TotalCattle,
		report.Herd.PregnantCattle,
		report.Herd.NeedingAttention,
		report.Herd.AverageWeight,
		report.TodayMilk.TotalLiters,
		report.TodayMilk.RecordCount,
		report.UpcomingBirths,
		report.WeightChecksDue,
		report.UpcomingCheckups,
	}
	if err := s.sheets.WriteRow(ctx, reportRange, row); err != nil {
		return fmt.Errorf("export daily report: %w", err)
	}

	s.logger.Info("daily report exported", zap.String("date", report.Date))
	return nil
}

// alreadyExported scans the sheet's date column for the given date. Read
// failures are logged and treated as not exported.
func (s *Service) alreadyExported(ctx context.Context, date string) bool {
	rows, err := s.sheets.ReadRange(ctx, reportDateRange)
	if err != nil {
		s.logger.Warn("could not read exported report dates", zap.Error(err))
		return false
	}

	for _, row := range rows {
		if len(row) > 0 && fmt.Sprint(row[0]) == date {
			return true
		}
	}
	return false
}

// CollectAlerts builds the operational notifications worth pushing: upcoming
// births, overdue weight checks and checkups due within the week.
func (s *Service) CollectAlerts(ctx context.Context, now time.Time) ([]notify.Alert, error) {
	cattle, err := s.store.ListCattle(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cattle for alerts: %w", err)
	}

	observations, err := s.store.ListObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("load observations for alerts: %w", err)
	}

	var alerts []notify.Alert

	for _, c := range aggregate.UpcomingBirths(cattle, now) {
		days, err := aggregate.DaysUntilBirth(c.PregnancyDueDate, now)
		if err != nil {
			continue
		}
		alerts = append(alerts, notify.Alert{
			Kind:    "birth",
			Subject: c.Name,
			Message: fmt.Sprintf("%s (%s) is due to calve in %d days, on %s.", c.Name, c.Breed, days, c.PregnancyDueDate),
		})
	}

	for _, c := range aggregate.NeedingWeightCheck(cattle, now) {
		alerts = append(alerts, notify.Alert{
			Kind:    "weight-check",
			Subject: c.Name,
			Message: fmt.Sprintf("%s has not been weighed since %s.", c.Name, c.LastWeightDate),
		})
	}

	horizon := now.Add(7 * 24 * time.Hour)
	for _, obs := range observations {
		if obs.NextCheckup == nil || !obs.NextCheckup.After(now) || obs.NextCheckup.After(horizon) {
			continue
		}
		alerts = append(alerts, notify.Alert{
			Kind:    "checkup",
			Subject: obs.CattleName,
			Message: fmt.Sprintf("%s has a checkup scheduled for %s.", obs.CattleName, obs.NextCheckup.Format("2006-01-02")),
		})
	}

	return alerts, nil
}
