package medical

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
)

type stubStore struct {
	cattle models.Cattle

	inserted  *models.MedicalObservation
	healthID  string
	healthSet *models.HealthStatus
}

func (s *stubStore) InsertObservation(_ context.Context, obs models.MedicalObservation) (string, error) {
	s.inserted = &obs
	return "obs-1", nil
}

func (s *stubStore) ListObservations(_ context.Context) ([]models.MedicalObservation, error) {
	return nil, nil
}

func (s *stubStore) UpdateObservation(_ context.Context, _ string, _ models.MedicalObservation) error {
	return nil
}

func (s *stubStore) DeleteObservation(_ context.Context, _ string) error { return nil }

func (s *stubStore) GetCattle(_ context.Context, id string) (models.Cattle, error) {
	if s.cattle.ID != id {
		return models.Cattle{}, mongodb.ErrNotFound
	}
	return s.cattle, nil
}

func (s *stubStore) SetHealthStatus(_ context.Context, id string, status models.HealthStatus) error {
	s.healthID = id
	s.healthSet = &status
	return nil
}

func validObservation() models.MedicalObservation {
	return models.MedicalObservation{
		CattleID: "c1",
		Date:     time.Date(2026, 9, 1, 10, 0, 0, 0, time.Local),
		Type:     models.ObservationIllness,
		Severity: models.SeverityModerate,
		Status:   models.StatusActive,
		Cost:     80,
	}
}

func TestAddActiveIllnessMovesHealthToTreatment(t *testing.T) {
	store := &stubStore{cattle: models.Cattle{ID: "c1", Name: "Luna"}}
	svc := NewService(store, nil)

	id, err := svc.Add(context.Background(), validObservation())

	require.NoError(t, err)
	require.Equal(t, "obs-1", id)
	require.Equal(t, "Luna", store.inserted.CattleName)
	require.NotNil(t, store.healthSet)
	require.Equal(t, "c1", store.healthID)
	require.Equal(t, models.HealthTreatment, *store.healthSet)
}

func TestAddCompletedTreatmentMovesHealthToHealthy(t *testing.T) {
	store := &stubStore{cattle: models.Cattle{ID: "c1"}}
	svc := NewService(store, nil)

	obs := validObservation()
	obs.Type = models.ObservationTreatment
	obs.Status = models.StatusCompleted

	_, err := svc.Add(context.Background(), obs)
	require.NoError(t, err)
	require.NotNil(t, store.healthSet)
	require.Equal(t, models.HealthHealthy, *store.healthSet)
}

func TestAddVaccinationLeavesHealthUntouched(t *testing.T) {
	store := &stubStore{cattle: models.Cattle{ID: "c1"}}
	svc := NewService(store, nil)

	obs := validObservation()
	obs.Type = models.ObservationVaccination

	_, err := svc.Add(context.Background(), obs)
	require.NoError(t, err)
	require.Nil(t, store.healthSet)
}

func TestAddDefaultsStatusToActive(t *testing.T) {
	store := &stubStore{cattle: models.Cattle{ID: "c1"}}
	svc := NewService(store, nil)

	obs := validObservation()
	obs.Status = ""

	_, err := svc.Add(context.Background(), obs)
	require.NoError(t, err)
	require.Equal(t, models.StatusActive, store.inserted.Status)
	// Defaulted-active illness still drives the health status.
	require.NotNil(t, store.healthSet)
	require.Equal(t, models.HealthTreatment, *store.healthSet)
}

func TestAddValidation(t *testing.T) {
	svc := NewService(&stubStore{cattle: models.Cattle{ID: "c1"}}, nil)
	ctx := context.Background()

	badType := validObservation()
	badType.Type = "surgery"
	_, err := svc.Add(ctx, badType)
	require.ErrorIs(t, err, ErrValidation)

	badSeverity := validObservation()
	badSeverity.Severity = "critical"
	_, err = svc.Add(ctx, badSeverity)
	require.ErrorIs(t, err, ErrValidation)

	badStatus := validObservation()
	badStatus.Status = "paused"
	_, err = svc.Add(ctx, badStatus)
	require.ErrorIs(t, err, ErrValidation)

	noDate := validObservation()
	noDate.Date = time.Time{}
	_, err = svc.Add(ctx, noDate)
	require.ErrorIs(t, err, ErrValidation)

	negativeCost := validObservation()
	negativeCost.Cost = -5
	_, err = svc.Add(ctx, negativeCost)
	require.ErrorIs(t, err, ErrValidation)
}
