package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// InsertMilk stores a new production record and returns its generated id.
func (r *Repository) InsertMilk(ctx context.Context, rec models.MilkRecord) (string, error) {
	rec.ID = ""
	return r.insertOne(ctx, milkCollection, rec)
}

// ListMilk returns every production record, newest production date first.
func (r *Repository) ListMilk(ctx context.Context) ([]models.MilkRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "productionDate", Value: -1}})
	cursor, err := r.coll(milkCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStoreErr("list milk records", err)
	}

	var records []models.MilkRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, wrapStoreErr("decode milk records", err)
	}
	return records, nil
}

// FindMilkByCattleAndDate looks up the record for an exact (cattleId,
// productionDate) pair, the natural key the merge-on-write path checks.
// Returns ErrNotFound when the pair has no record yet.
func (r *Repository) FindMilkByCattleAndDate(ctx context.Context, cattleID, productionDate string) (models.MilkRecord, error) {
	filter := bson.M{"cattleId": cattleID, "productionDate": productionDate}

	var rec models.MilkRecord
	err := r.coll(milkCollection).FindOne(ctx, filter).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.MilkRecord{}, ErrNotFound
	}
	if err != nil {
		return models.MilkRecord{}, wrapStoreErr("find milk record", err)
	}
	return rec, nil
}

// UpdateMilk replaces the stored production record.
func (r *Repository) UpdateMilk(ctx context.Context, id string, rec models.MilkRecord) error {
	rec.ID = ""
	return r.replaceByID(ctx, milkCollection, id, rec)
}

// DeleteMilk removes one production record.
func (r *Repository) DeleteMilk(ctx context.Context, id string) error {
	return r.deleteByID(ctx, milkCollection, id)
}

// DeleteOrphanedMilk removes records whose animal no longer exists.
func (r *Repository) DeleteOrphanedMilk(ctx context.Context, liveCattleIDs []string) (int64, error) {
	return r.deleteOrphans(ctx, milkCollection, liveCattleIDs)
}

// WatchMilk streams full date-ordered snapshots of the milk collection.
func (r *Repository) WatchMilk(ctx context.Context) (<-chan []models.MilkRecord, error) {
	return watchSnapshots(ctx, r, milkCollection, r.ListMilk)
}
