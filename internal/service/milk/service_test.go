package milk

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
)

type stubStore struct {
	existing *models.MilkRecord
	cattle   models.Cattle

	inserted  *models.MilkRecord
	updatedID string
	updated   *models.MilkRecord
	todayID   string
	todaySet  *float64
}

func (s *stubStore) InsertMilk(_ context.Context, rec models.MilkRecord) (string, error) {
	s.inserted = &rec
	return "milk-1", nil
}

func (s *stubStore) ListMilk(_ context.Context) ([]models.MilkRecord, error) {
	return nil, nil
}

func (s *stubStore) FindMilkByCattleAndDate(_ context.Context, cattleID, date string) (models.MilkRecord, error) {
	if s.existing != nil && s.existing.CattleID == cattleID && s.existing.ProductionDate == date {
		return *s.existing, nil
	}
	return models.MilkRecord{}, mongodb.ErrNotFound
}

func (s *stubStore) UpdateMilk(_ context.Context, id string, rec models.MilkRecord) error {
	s.updatedID = id
	s.updated = &rec
	return nil
}

func (s *stubStore) DeleteMilk(_ context.Context, _ string) error { return nil }

func (s *stubStore) GetCattle(_ context.Context, id string) (models.Cattle, error) {
	if s.cattle.ID != id {
		return models.Cattle{}, mongodb.ErrNotFound
	}
	return s.cattle, nil
}

func (s *stubStore) SetTodayMilk(_ context.Context, id string, liters float64) error {
	s.todayID = id
	s.todaySet = &liters
	return nil
}

func newTestService(store *stubStore, now string) *Service {
	svc := NewService(store, nil)
	svc.now = func() time.Time {
		t, _ := models.ParseCalDate(now)
		return t
	}
	return svc
}

func TestAddInsertsNewRecord(t *testing.T) {
	store := &stubStore{cattle: models.Cattle{ID: "c1", Name: "Luna", Breed: "Holstein"}}
	svc := newTestService(store, "2026-09-01")

	result, err := svc.Add(context.Background(), models.MilkRecord{
		CattleID:       "c1",
		ProductionDate: "2026-08-15",
		MorningLiters:  8, AfternoonLiters: 6, EveningLiters: 4,
		TotalLiters: 999, // ignored, always recomputed
	})

	require.NoError(t, err)
	require.False(t, result.Merged)
	require.Equal(t, "milk-1", result.ID)
	require.NotNil(t, store.inserted)
	require.Equal(t, "Luna", store.inserted.CattleName)
	require.Equal(t, "Holstein", store.inserted.CattleBreed)
	require.Equal(t, 18.0, store.inserted.TotalLiters)

	// Not today's date, so the denormalized field stays untouched.
	require.Nil(t, store.todaySet)
}

func TestAddMergesExistingRecord(t *testing.T) {
	store := &stubStore{
		cattle: models.Cattle{ID: "c1", Name: "Luna"},
		existing: &models.MilkRecord{
			ID: "milk-9", CattleID: "c1", ProductionDate: "2026-09-01",
			MorningLiters: 2, AfternoonLiters: 3, EveningLiters: 1, TotalLiters: 6,
		},
	}
	svc := newTestService(store, "2026-09-01")

	result, err := svc.Add(context.Background(), models.MilkRecord{
		CattleID:       "c1",
		ProductionDate: "2026-09-01",
		MorningLiters:  1, AfternoonLiters: 1, EveningLiters: 1,
	})

	require.NoError(t, err)
	require.True(t, result.Merged)
	require.Equal(t, "milk-9", result.ID)
	require.Equal(t, "milk-9", store.updatedID)
	require.Equal(t, 9.0, store.updated.TotalLiters)
	require.Equal(t, 3.0, store.updated.MorningLiters)

	// Merged total for today lands on the animal.
	require.NotNil(t, store.todaySet)
	require.Equal(t, "c1", store.todayID)
	require.Equal(t, 9.0, *store.todaySet)
}

func TestAddRejectsOutOfRangeShifts(t *testing.T) {
	svc := newTestService(&stubStore{cattle: models.Cattle{ID: "c1"}}, "2026-09-01")

	_, err := svc.Add(context.Background(), models.MilkRecord{
		CattleID: "c1", ProductionDate: "2026-09-01", MorningLiters: 51,
	})
	require.ErrorIs(t, err, ErrInvalidLiters)

	_, err = svc.Add(context.Background(), models.MilkRecord{
		CattleID: "c1", ProductionDate: "2026-09-01", EveningLiters: -1,
	})
	require.ErrorIs(t, err, ErrInvalidLiters)
}

func TestAddRejectsBadDate(t *testing.T) {
	svc := newTestService(&stubStore{cattle: models.Cattle{ID: "c1"}}, "2026-09-01")

	_, err := svc.Add(context.Background(), models.MilkRecord{
		CattleID: "c1", ProductionDate: "15/08/2026",
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestAddUnknownCattle(t *testing.T) {
	svc := newTestService(&stubStore{}, "2026-09-01")

	_, err := svc.Add(context.Background(), models.MilkRecord{
		CattleID: "ghost", ProductionDate: "2026-09-01",
	})
	require.ErrorIs(t, err, mongodb.ErrNotFound)
}

func TestUpdateRecomputesTotal(t *testing.T) {
	store := &stubStore{}
	svc := newTestService(store, "2026-09-01")

	err := svc.Update(context.Background(), "milk-1", models.MilkRecord{
		ProductionDate: "2026-08-01",
		MorningLiters:  4, AfternoonLiters: 4, EveningLiters: 2,
		TotalLiters: 50,
	})

	require.NoError(t, err)
	require.Equal(t, 10.0, store.updated.TotalLiters)
}
