package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

type stubStore struct {
	cattle       []models.Cattle
	milk         []models.MilkRecord
	observations []models.MedicalObservation
}

func (s *stubStore) ListCattle(_ context.Context) ([]models.Cattle, error) {
	return s.cattle, nil
}

func (s *stubStore) ListMilk(_ context.Context) ([]models.MilkRecord, error) {
	return s.milk, nil
}

func (s *stubStore) ListObservations(_ context.Context) ([]models.MedicalObservation, error) {
	return s.observations, nil
}

type stubSheets struct {
	rows     [][]interface{}
	existing [][]interface{}
	readErr  error
}

func (s *stubSheets) WriteRow(_ context.Context, _ string, values []interface{}) error {
	s.rows = append(s.rows, values)
	return nil
}

func (s *stubSheets) ReadRange(_ context.Context, _ string) ([][]interface{}, error) {
	return s.existing, s.readErr
}

func fixedNow(t *testing.T) time.Time {
	t.Helper()
	now, err := models.ParseCalDate("2026-09-01")
	require.NoError(t, err)
	return now
}

func TestGenerateDailyReport(t *testing.T) {
	now := fixedNow(t)
	checkup := now.Add(2 * 24 * time.Hour)

	store := &stubStore{
		cattle: []models.Cattle{
			{ID: "a", Name: "Luna", Sex: models.SexFemale, PregnancyDueDate: "2026-09-15", HealthStatus: models.HealthHealthy, LastWeight: 500},
			{ID: "b", Name: "Canela", HealthStatus: models.HealthSick, LastWeight: 450, LastWeightDate: "2026-06-01"},
		},
		milk: []models.MilkRecord{
			{CattleID: "a", ProductionDate: "2026-09-01", TotalLiters: 18},
			{CattleID: "b", ProductionDate: "2026-08-30", TotalLiters: 20},
		},
		observations: []models.MedicalObservation{
			{CattleID: "b", CattleName: "Canela", Status: models.StatusActive, NextCheckup: &checkup},
		},
	}

	svc := NewService(store, nil, nil)

	report, err := svc.GenerateDailyReport(context.Background(), now)
	require.NoError(t, err)

	require.Equal(t, "2026-09-01", report.Date)
	require.Equal(t, 2, report.Herd.TotalCattle)
	require.Equal(t, 1, report.Herd.PregnantCattle)
	require.Equal(t, 1, report.UpcomingBirths)
	require.Equal(t, 1, report.WeightChecksDue)
	require.Equal(t, 1, report.ActiveObservations)
	require.Equal(t, 1, report.UpcomingCheckups)

	// Only today's record enters the milk block.
	require.Equal(t, 1, report.TodayMilk.RecordCount)
	require.Equal(t, 18.0, report.TodayMilk.TotalLiters)

	require.Contains(t, report.Summary(), "2 cattle")
	require.Contains(t, report.Summary(), "18.0 L")
}

func TestExportDaily(t *testing.T) {
	sheets := &stubSheets{}
	svc := NewService(&stubStore{}, sheets, nil)

	report := DailyReport{Date: "2026-09-01", UpcomingBirths: 2}
	require.NoError(t, svc.ExportDaily(context.Background(), report))

	require.Len(t, sheets.rows, 1)
	require.Equal(t, "2026-09-01", sheets.rows[0][0])
}

func TestExportDailySkipsWhenDisabled(t *testing.T) {
	svc := NewService(&stubStore{}, nil, nil)
	require.NoError(t, svc.ExportDaily(context.Background(), DailyReport{}))
}

func TestExportDailySkipsAlreadyExportedDate(t *testing.T) {
	sheets := &stubSheets{existing: [][]interface{}{
		{"2026-08-31"},
		{"2026-09-01"},
	}}
	svc := NewService(&stubStore{}, sheets, nil)

	require.NoError(t, svc.ExportDaily(context.Background(), DailyReport{Date: "2026-09-01"}))
	require.Empty(t, sheets.rows)

	require.NoError(t, svc.ExportDaily(context.Background(), DailyReport{Date: "2026-09-02"}))
	require.Len(t, sheets.rows, 1)
}

func TestExportDailyWritesWhenDateColumnUnreadable(t *testing.T) {
	sheets := &stubSheets{readErr: context.DeadlineExceeded}
	svc := NewService(&stubStore{}, sheets, nil)

	require.NoError(t, svc.ExportDaily(context.Background(), DailyReport{Date: "2026-09-01"}))
	require.Len(t, sheets.rows, 1)
}

func TestCollectAlerts(t *testing.T) {
	now := fixedNow(t)
	soon := now.Add(3 * 24 * time.Hour)
	far := now.Add(9 * 24 * time.Hour)

	store := &stubStore{
		cattle: []models.Cattle{
			{Name: "Luna", Breed: "Holstein", Sex: models.SexFemale, PregnancyDueDate: "2026-09-10"},
			{Name: "Canela", LastWeightDate: "2026-05-01"},
			{Name: "Fresca", LastWeightDate: "2026-08-25"},
		},
		observations: []models.MedicalObservation{
			{CattleName: "Luna", NextCheckup: &soon},
			{CattleName: "Canela", NextCheckup: &far},
		},
	}

	svc := NewService(store, nil, nil)

	alerts, err := svc.CollectAlerts(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, alerts, 3)

	require.Equal(t, "birth", alerts[0].Kind)
	require.Equal(t, "Luna", alerts[0].Subject)
	require.Contains(t, alerts[0].Message, "9 days")

	require.Equal(t, "weight-check", alerts[1].Kind)
	require.Equal(t, "Canela", alerts[1].Subject)

	require.Equal(t, "checkup", alerts[2].Kind)
	require.Equal(t, "Luna", alerts[2].Subject)
}
