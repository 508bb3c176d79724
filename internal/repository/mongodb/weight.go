package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// InsertWeight stores a new weigh-in and returns its generated id.
func (r *Repository) InsertWeight(ctx context.Context, rec models.WeightRecord) (string, error) {
	rec.ID = ""
	return r.insertOne(ctx, weightCollection, rec)
}

// ListWeights returns every weigh-in, newest date first.
func (r *Repository) ListWeights(ctx context.Context) ([]models.WeightRecord, error) {
	return r.findWeights(ctx, bson.M{})
}

// ListWeightsByCattle returns one animal's weigh-ins, newest date first.
func (r *Repository) ListWeightsByCattle(ctx context.Context, cattleID string) ([]models.WeightRecord, error) {
	return r.findWeights(ctx, bson.M{"cattleId": cattleID})
}

func (r *Repository) findWeights(ctx context.Context, filter bson.M) ([]models.WeightRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "weightDate", Value: -1}})
	cursor, err := r.coll(weightCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapStoreErr("list weight records", err)
	}

	var records []models.WeightRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, wrapStoreErr("decode weight records", err)
	}
	return records, nil
}

// UpdateWeight replaces the stored weigh-in.
func (r *Repository) UpdateWeight(ctx context.Context, id string, rec models.WeightRecord) error {
	rec.ID = ""
	return r.replaceByID(ctx, weightCollection, id, rec)
}

// DeleteWeight removes one weigh-in.
func (r *Repository) DeleteWeight(ctx context.Context, id string) error {
	return r.deleteByID(ctx, weightCollection, id)
}

// DeleteOrphanedWeights removes records whose animal no longer exists.
func (r *Repository) DeleteOrphanedWeights(ctx context.Context, liveCattleIDs []string) (int64, error) {
	return r.deleteOrphans(ctx, weightCollection, liveCattleIDs)
}

// WatchWeights streams full date-ordered snapshots of the weight collection.
func (r *Repository) WatchWeights(ctx context.Context) (<-chan []models.WeightRecord, error) {
	return watchSnapshots(ctx, r, weightCollection, r.ListWeights)
}
