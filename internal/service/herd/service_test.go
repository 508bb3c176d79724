package herd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
)

type stubStore struct {
	cattle       []models.Cattle
	inserted     []models.Cattle
	deletedID    string
	orphanedArgs [][]string
}

func (s *stubStore) InsertCattle(_ context.Context, c models.Cattle) (string, error) {
	s.inserted = append(s.inserted, c)
	return "new-id", nil
}

func (s *stubStore) ListCattle(_ context.Context) ([]models.Cattle, error) {
	return s.cattle, nil
}

func (s *stubStore) GetCattle(_ context.Context, id string) (models.Cattle, error) {
	for _, c := range s.cattle {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Cattle{}, mongodb.ErrNotFound
}

func (s *stubStore) UpdateCattle(_ context.Context, _ string, _ models.Cattle) error {
	return nil
}

func (s *stubStore) DeleteCattle(_ context.Context, id string) error {
	s.deletedID = id
	return nil
}

func (s *stubStore) DeleteOrphanedMilk(_ context.Context, ids []string) (int64, error) {
	s.orphanedArgs = append(s.orphanedArgs, ids)
	return 2, nil
}

func (s *stubStore) DeleteOrphanedWeights(_ context.Context, ids []string) (int64, error) {
	s.orphanedArgs = append(s.orphanedArgs, ids)
	return 1, nil
}

func (s *stubStore) DeleteOrphanedObservations(_ context.Context, ids []string) (int64, error) {
	s.orphanedArgs = append(s.orphanedArgs, ids)
	return 0, nil
}

func validCattle() models.Cattle {
	return models.Cattle{
		Name:      "Luna",
		Breed:     "Holstein",
		BirthDate: "2024-05-01",
		Sex:       models.SexFemale,
	}
}

func TestRegisterDefaultsHealthStatus(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, nil)

	id, err := svc.Register(context.Background(), validCattle())
	require.NoError(t, err)
	require.Equal(t, "new-id", id)
	require.Len(t, store.inserted, 1)
	require.Equal(t, models.HealthHealthy, store.inserted[0].HealthStatus)
}

func TestRegisterValidation(t *testing.T) {
	svc := NewService(&stubStore{}, nil)
	ctx := context.Background()

	noName := validCattle()
	noName.Name = ""
	_, err := svc.Register(ctx, noName)
	require.ErrorIs(t, err, ErrValidation)

	badDate := validCattle()
	badDate.BirthDate = "01/05/2024"
	_, err = svc.Register(ctx, badDate)
	require.ErrorIs(t, err, ErrValidation)

	badSex := validCattle()
	badSex.Sex = "heifer"
	_, err = svc.Register(ctx, badSex)
	require.ErrorIs(t, err, ErrValidation)

	lightweight := validCattle()
	lightweight.LastWeight = 20
	_, err = svc.Register(ctx, lightweight)
	require.ErrorIs(t, err, ErrValidation)

	unknownWeight := validCattle()
	unknownWeight.LastWeight = 0
	_, err = svc.Register(ctx, unknownWeight)
	require.NoError(t, err)
}

func TestRegisterRejectsDueDateForMales(t *testing.T) {
	svc := NewService(&stubStore{}, nil)

	bull := validCattle()
	bull.Sex = models.SexMale
	bull.PregnancyDueDate = "2026-10-01"

	_, err := svc.Register(context.Background(), bull)
	require.ErrorIs(t, err, ErrDueDateForMale)
}

func TestDeleteDoesNotCascade(t *testing.T) {
	store := &stubStore{}
	svc := NewService(store, nil)

	require.NoError(t, svc.Delete(context.Background(), "c1"))
	require.Equal(t, "c1", store.deletedID)
	require.Empty(t, store.orphanedArgs)
}

func TestCleanupOrphans(t *testing.T) {
	store := &stubStore{cattle: []models.Cattle{{ID: "a"}, {ID: "b"}}}
	svc := NewService(store, nil)

	report, err := svc.CleanupOrphans(context.Background())
	require.NoError(t, err)
	require.Equal(t, CleanupReport{MilkRemoved: 2, WeightRemoved: 1, MedicalRemoved: 0}, report)

	require.Len(t, store.orphanedArgs, 3)
	for _, ids := range store.orphanedArgs {
		require.Equal(t, []string{"a", "b"}, ids)
	}
}
