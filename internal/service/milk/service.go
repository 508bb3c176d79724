package milk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/aggregate"
	"github.com/mamadbah2/herdbook/internal/domain/models"
	"github.com/mamadbah2/herdbook/internal/repository/mongodb"
)

// ErrInvalidLiters indicates a shift quantity outside the [0,50] range.
var ErrInvalidLiters = fmt.Errorf("shift liters must be between %.0f and %.0f", models.MinShiftLiters, models.MaxShiftLiters)

// ErrInvalidDate indicates an unparseable production date.
var ErrInvalidDate = errors.New("invalid production date")

// Store is the record-store surface the milk service consumes.
type Store interface {
	InsertMilk(ctx context.Context, rec models.MilkRecord) (string, error)
	ListMilk(ctx context.Context) ([]models.MilkRecord, error)
	FindMilkByCattleAndDate(ctx context.Context, cattleID, productionDate string) (models.MilkRecord, error)
	UpdateMilk(ctx context.Context, id string, rec models.MilkRecord) error
	DeleteMilk(ctx context.Context, id string) error
	GetCattle(ctx context.Context, id string) (models.Cattle, error)
	SetTodayMilk(ctx context.Context, id string, liters float64) error
}

// Service owns milk record writes, including the merge-on-duplicate-date rule
// and the today's-production denormalization hook.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a milk service instance.
func NewService(store Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Result reports what a submission produced.
type Result struct {
	ID     string            `json:"id"`
	Record models.MilkRecord `json:"record"`
	Merged bool              `json:"merged"`
}

// Add stores a production entry, merging into the existing record when one
// already exists for the same (cattleId, productionDate) pair. The lookup and
// the write are two separate store calls, so concurrent submissions for the
// same pair can still race; the store offers no transaction to close that gap.
func (s *Service) Add(ctx context.Context, entry models.MilkRecord) (Result, error) {
	if err := validateShifts(entry); err != nil {
		return Result{}, err
	}
	if _, err := models.ParseCalDate(entry.ProductionDate); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	cattle, err := s.store.GetCattle(ctx, entry.CattleID)
	if err != nil {
		return Result{}, fmt.Errorf("resolve cattle %s: %w", entry.CattleID, err)
	}
	entry.CattleName = cattle.Name
	entry.CattleBreed = cattle.Breed
	entry.TotalLiters = entry.ShiftSum()

	result, err := s.upsert(ctx, entry)
	if err != nil {
		return Result{}, err
	}

	// Refresh the animal's today's-production mirror when the entry is for
	// the current local calendar date. Best-effort: the primary write stands
	// even if this fails.
	if entry.ProductionDate == models.FormatCalDate(s.now()) {
		if err := s.store.SetTodayMilk(ctx, entry.CattleID, result.Record.TotalLiters); err != nil {
			s.logger.Warn("failed to update today's milk production",
				zap.String("cattle_id", entry.CattleID), zap.Error(err))
		}
	}

	return result, nil
}

func (s *Service) upsert(ctx context.Context, entry models.MilkRecord) (Result, error) {
	existing, err := s.store.FindMilkByCattleAndDate(ctx, entry.CattleID, entry.ProductionDate)
	switch {
	case err == nil:
		merged := aggregate.MergeMilk(existing, entry)
		if err := s.store.UpdateMilk(ctx, existing.ID, merged); err != nil {
			return Result{}, fmt.Errorf("merge milk record %s: %w", existing.ID, err)
		}
		merged.ID = existing.ID
		s.logger.Info("milk record merged",
			zap.String("id", existing.ID),
			zap.String("cattle_id", entry.CattleID),
			zap.String("date", entry.ProductionDate))
		return Result{ID: existing.ID, Record: merged, Merged: true}, nil

	case errors.Is(err, mongodb.ErrNotFound):
		id, err := s.store.InsertMilk(ctx, entry)
		if err != nil {
			return Result{}, fmt.Errorf("insert milk record: %w", err)
		}
		entry.ID = id
		return Result{ID: id, Record: entry}, nil

	default:
		return Result{}, fmt.Errorf("lookup milk record: %w", err)
	}
}

// List returns every production record.
func (s *Service) List(ctx context.Context) ([]models.MilkRecord, error) {
	return s.store.ListMilk(ctx)
}

// Update replaces a stored record, recomputing the total from the shifts.
func (s *Service) Update(ctx context.Context, id string, rec models.MilkRecord) error {
	if err := validateShifts(rec); err != nil {
		return err
	}
	if _, err := models.ParseCalDate(rec.ProductionDate); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	rec.TotalLiters = rec.ShiftSum()

	if err := s.store.UpdateMilk(ctx, id, rec); err != nil {
		return fmt.Errorf("update milk record %s: %w", id, err)
	}
	return nil
}

// Delete removes one production record.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteMilk(ctx, id); err != nil {
		return fmt.Errorf("delete milk record %s: %w", id, err)
	}
	return nil
}

func validateShifts(rec models.MilkRecord) error {
	for _, liters := range []float64{rec.MorningLiters, rec.AfternoonLiters, rec.EveningLiters} {
		if liters < models.MinShiftLiters || liters > models.MaxShiftLiters {
			return ErrInvalidLiters
		}
	}
	return nil
}
