package weight

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// ErrInvalidWeight indicates a measurement outside the [50,1200] kg range.
var ErrInvalidWeight = fmt.Errorf("weight must be between %.0f and %.0f kg", models.MinWeightKg, models.MaxWeightKg)

// ErrInvalidDate indicates an unparseable weigh-in date.
var ErrInvalidDate = errors.New("invalid weight date")

// Store is the record-store surface the weight service consumes.
type Store interface {
	InsertWeight(ctx context.Context, rec models.WeightRecord) (string, error)
	ListWeights(ctx context.Context) ([]models.WeightRecord, error)
	ListWeightsByCattle(ctx context.Context, cattleID string) ([]models.WeightRecord, error)
	UpdateWeight(ctx context.Context, id string, rec models.WeightRecord) error
	DeleteWeight(ctx context.Context, id string) error
	GetCattle(ctx context.Context, id string) (models.Cattle, error)
	SetLastWeight(ctx context.Context, id string, weightKg float64, weightDate string) error
}

// Service owns weigh-in writes and the last-weight denormalization hook.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a weight service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Add validates and stores a weigh-in. The previous weight and the change are
// taken from the animal's most recent existing record; same-day duplicates are
// allowed and simply coexist in history.
func (s *Service) Add(ctx context.Context, rec models.WeightRecord) (string, error) {
	if err := validate(rec); err != nil {
		return "", err
	}

	cattle, err := s.store.GetCattle(ctx, rec.CattleID)
	if err != nil {
		return "", fmt.Errorf("resolve cattle %s: %w", rec.CattleID, err)
	}
	rec.CattleName = cattle.Name
	rec.CattleBreed = cattle.Breed

	history, err := s.store.ListWeightsByCattle(ctx, rec.CattleID)
	if err != nil {
		return "", fmt.Errorf("load weight history for %s: %w", rec.CattleID, err)
	}
	if len(history) > 0 {
		previous := history[0].WeightKg
		change := rec.WeightKg - previous
		rec.PreviousWeight = &previous
		rec.WeightChange = &change
	}

	id, err := s.store.InsertWeight(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("insert weight record: %w", err)
	}

	// Mirror the new measurement onto the animal. Best-effort: the weigh-in
	// is already stored even if this fails.
	if err := s.store.SetLastWeight(ctx, rec.CattleID, rec.WeightKg, rec.WeightDate); err != nil {
		s.logger.Warn("failed to update last weight",
			zap.String("cattle_id", rec.CattleID), zap.Error(err))
	}

	return id, nil
}

// List returns every weigh-in.
func (s *Service) List(ctx context.Context) ([]models.WeightRecord, error) {
	return s.store.ListWeights(ctx)
}

// ListByCattle returns one animal's weigh-ins, newest first.
func (s *Service) ListByCattle(ctx context.Context, cattleID string) ([]models.WeightRecord, error) {
	return s.store.ListWeightsByCattle(ctx, cattleID)
}

// Update replaces a stored weigh-in.
func (s *Service) Update(ctx context.Context, id string, rec models.WeightRecord) error {
	if err := validate(rec); err != nil {
		return err
	}
	if err := s.store.UpdateWeight(ctx, id, rec); err != nil {
		return fmt.Errorf("update weight record %s: %w", id, err)
	}
	return nil
}

// Delete removes one weigh-in.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteWeight(ctx, id); err != nil {
		return fmt.Errorf("delete weight record %s: %w", id, err)
	}
	return nil
}

func validate(rec models.WeightRecord) error {
	if rec.WeightKg < models.MinWeightKg || rec.WeightKg > models.MaxWeightKg {
		return ErrInvalidWeight
	}
	if _, err := models.ParseCalDate(rec.WeightDate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	return nil
}
