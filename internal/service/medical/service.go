package medical

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// ErrValidation wraps field-level observation failures.
var ErrValidation = errors.New("invalid medical observation")

// Store is the record-store surface the medical service consumes.
type Store interface {
	InsertObservation(ctx context.Context, obs models.MedicalObservation) (string, error)
	ListObservations(ctx context.Context) ([]models.MedicalObservation, error)
	UpdateObservation(ctx context.Context, id string, obs models.MedicalObservation) error
	DeleteObservation(ctx context.Context, id string) error
	GetCattle(ctx context.Context, id string) (models.Cattle, error)
	SetHealthStatus(ctx context.Context, id string, status models.HealthStatus) error
}

// Service owns medical observation writes and the health-status hook.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a medical service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// Add validates and stores an observation. Illness and treatment observations
// also move the animal's health status: to treatment while the observation is
// active, back to healthy otherwise. Updates and deletes never touch the
// status; it only reacts to new observations.
func (s *Service) Add(ctx context.Context, obs models.MedicalObservation) (string, error) {
	if err := validate(obs); err != nil {
		return "", err
	}
	if obs.Status == "" {
		obs.Status = models.StatusActive
	}

	cattle, err := s.store.GetCattle(ctx, obs.CattleID)
	if err != nil {
		return "", fmt.Errorf("resolve cattle %s: %w", obs.CattleID, err)
	}
	obs.CattleName = cattle.Name

	id, err := s.store.InsertObservation(ctx, obs)
	if err != nil {
		return "", fmt.Errorf("insert medical observation: %w", err)
	}

	if obs.Type.AffectsHealthStatus() {
		status := models.HealthHealthy
		if obs.Status == models.StatusActive {
			status = models.HealthTreatment
		}
		// Best-effort: the observation is already stored even if this fails.
		if err := s.store.SetHealthStatus(ctx, obs.CattleID, status); err != nil {
			s.logger.Warn("failed to update health status",
				zap.String("cattle_id", obs.CattleID), zap.Error(err))
		}
	}

	return id, nil
}

// List returns every observation, newest first.
func (s *Service) List(ctx context.Context) ([]models.MedicalObservation, error) {
	return s.store.ListObservations(ctx)
}

// Update replaces a stored observation.
func (s *Service) Update(ctx context.Context, id string, obs models.MedicalObservation) error {
	if err := validate(obs); err != nil {
		return err
	}
	if err := s.store.UpdateObservation(ctx, id, obs); err != nil {
		return fmt.Errorf("update medical observation %s: %w", id, err)
	}
	return nil
}

// Delete removes one observation.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteObservation(ctx, id); err != nil {
		return fmt.Errorf("delete medical observation %s: %w", id, err)
	}
	return nil
}

func validate(obs models.MedicalObservation) error {
	switch obs.Type {
	case models.ObservationIllness, models.ObservationTreatment,
		models.ObservationVaccination, models.ObservationCheckup, models.ObservationOther:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrValidation, obs.Type)
	}
	switch obs.Severity {
	case models.SeverityMild, models.SeverityModerate, models.SeveritySevere:
	default:
		return fmt.Errorf("%w: unknown severity %q", ErrValidation, obs.Severity)
	}
	switch obs.Status {
	case "", models.StatusActive, models.StatusCompleted, models.StatusSuspended:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrValidation, obs.Status)
	}
	if obs.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrValidation)
	}
	if obs.Cost < 0 {
		return fmt.Errorf("%w: cost cannot be negative", ErrValidation)
	}
	return nil
}
