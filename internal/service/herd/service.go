package herd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// ErrDueDateForMale indicates a pregnancy due date submitted for a male
// animal; the invariant is enforced at input time, not in the stored schema.
var ErrDueDateForMale = errors.New("pregnancy due date is only valid for female cattle")

// ErrValidation wraps field-level registration failures.
var ErrValidation = errors.New("invalid cattle record")

// Registration weights outside this range are rejected; zero means unknown.
const (
	minRegistrationWeightKg = 50.0
	maxRegistrationWeightKg = 1000.0
)

// Store is the record-store surface the herd service consumes.
type Store interface {
	InsertCattle(ctx context.Context, c models.Cattle) (string, error)
	ListCattle(ctx context.Context) ([]models.Cattle, error)
	GetCattle(ctx context.Context, id string) (models.Cattle, error)
	UpdateCattle(ctx context.Context, id string, c models.Cattle) error
	DeleteCattle(ctx context.Context, id string) error
	DeleteOrphanedMilk(ctx context.Context, liveCattleIDs []string) (int64, error)
	DeleteOrphanedWeights(ctx context.Context, liveCattleIDs []string) (int64, error)
	DeleteOrphanedObservations(ctx context.Context, liveCattleIDs []string) (int64, error)
}

// Service owns the cattle lifecycle.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a herd service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Register validates and stores a new animal.
func (s *Service) Register(ctx context.Context, c models.Cattle) (string, error) {
	if err := validate(c); err != nil {
		return "", err
	}
	if c.HealthStatus == "" {
		c.HealthStatus = models.HealthHealthy
	}

	id, err := s.store.InsertCattle(ctx, c)
	if err != nil {
		return "", fmt.Errorf("register cattle: %w", err)
	}

	s.logger.Info("cattle registered", zap.String("id", id), zap.String("name", c.Name), zap.String("breed", c.Breed))
	return id, nil
}

// List returns the full animal collection.
func (s *Service) List(ctx context.Context) ([]models.Cattle, error) {
	return s.store.ListCattle(ctx)
}

// Get returns one animal by id.
func (s *Service) Get(ctx context.Context, id string) (models.Cattle, error) {
	return s.store.GetCattle(ctx, id)
}

// Update validates and replaces an animal's stored document.
func (s *Service) Update(ctx context.Context, id string, c models.Cattle) error {
	if err := validate(c); err != nil {
		return err
	}
	if err := s.store.UpdateCattle(ctx, id, c); err != nil {
		return fmt.Errorf("update cattle %s: %w", id, err)
	}
	return nil
}

// Delete removes one animal. Dependent milk/weight/medical records are left in
// place; CleanupOrphans reclaims them on demand.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteCattle(ctx, id); err != nil {
		return fmt.Errorf("delete cattle %s: %w", id, err)
	}
	s.logger.Info("cattle deleted, dependent records not cascaded", zap.String("id", id))
	return nil
}

// CleanupReport counts the orphaned records removed by a maintenance pass.
type CleanupReport struct {
	MilkRemoved    int64 `json:"milkRemoved"`
	WeightRemoved  int64 `json:"weightRemoved"`
	MedicalRemoved int64 `json:"medicalRemoved"`
}

// CleanupOrphans removes milk/weight/medical records whose animal no longer
// exists. Explicit maintenance operation; deleting an animal never cascades.
func (s *Service) CleanupOrphans(ctx context.Context) (CleanupReport, error) {
	cattle, err := s.store.ListCattle(ctx)
	if err != nil {
		return CleanupReport{}, fmt.Errorf("cleanup orphans: %w", err)
	}

	liveIDs := make([]string, 0, len(cattle))
	for _, c := range cattle {
		liveIDs = append(liveIDs, c.ID)
	}

	var report CleanupReport
	if report.MilkRemoved, err = s.store.DeleteOrphanedMilk(ctx, liveIDs); err != nil {
		return report, fmt.Errorf("cleanup orphaned milk records: %w", err)
	}
	if report.WeightRemoved, err = s.store.DeleteOrphanedWeights(ctx, liveIDs); err != nil {
		return report, fmt.Errorf("cleanup orphaned weight records: %w", err)
	}
	if report.MedicalRemoved, err = s.store.DeleteOrphanedObservations(ctx, liveIDs); err != nil {
		return report, fmt.Errorf("cleanup orphaned medical observations: %w", err)
	}

	s.logger.Info("orphan cleanup finished",
		zap.Int64("milk_removed", report.MilkRemoved),
		zap.Int64("weight_removed", report.WeightRemoved),
		zap.Int64("medical_removed", report.MedicalRemoved))
	return report, nil
}

func validate(c models.Cattle) error {
	if c.Name == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if c.Breed == "" {
		return fmt.Errorf("%w: breed is required", ErrValidation)
	}
	if _, err := models.ParseCalDate(c.BirthDate); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if c.Sex != models.SexFemale && c.Sex != models.SexMale {
		return fmt.Errorf("%w: sex must be female or male", ErrValidation)
	}
	if c.PregnancyDueDate != "" {
		if c.Sex != models.SexFemale {
			return ErrDueDateForMale
		}
		if _, err := models.ParseCalDate(c.PregnancyDueDate); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if c.LastWeight != 0 && (c.LastWeight < minRegistrationWeightKg || c.LastWeight > maxRegistrationWeightKg) {
		return fmt.Errorf("%w: weight must be between %.0f and %.0f kg", ErrValidation, minRegistrationWeightKg, maxRegistrationWeightKg)
	}
	return nil
}
