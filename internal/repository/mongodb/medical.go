package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// InsertObservation stores a new medical observation and returns its id.
func (r *Repository) InsertObservation(ctx context.Context, obs models.MedicalObservation) (string, error) {
	obs.ID = ""
	return r.insertOne(ctx, medicalCollection, obs)
}

// ListObservations returns every medical observation, newest first.
func (r *Repository) ListObservations(ctx context.Context) ([]models.MedicalObservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll(medicalCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStoreErr("list medical observations", err)
	}

	var observations []models.MedicalObservation
	if err := cursor.All(ctx, &observations); err != nil {
		return nil, wrapStoreErr("decode medical observations", err)
	}
	return observations, nil
}

// UpdateObservation replaces the stored observation.
func (r *Repository) UpdateObservation(ctx context.Context, id string, obs models.MedicalObservation) error {
	obs.ID = ""
	return r.replaceByID(ctx, medicalCollection, id, obs)
}

// DeleteObservation removes one observation.
func (r *Repository) DeleteObservation(ctx context.Context, id string) error {
	return r.deleteByID(ctx, medicalCollection, id)
}

// DeleteOrphanedObservations removes records whose animal no longer exists.
func (r *Repository) DeleteOrphanedObservations(ctx context.Context, liveCattleIDs []string) (int64, error) {
	return r.deleteOrphans(ctx, medicalCollection, liveCattleIDs)
}

// WatchObservations streams full date-ordered snapshots of the collection.
func (r *Repository) WatchObservations(ctx context.Context) (<-chan []models.MedicalObservation, error) {
	return watchSnapshots(ctx, r, medicalCollection, r.ListObservations)
}
