package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// InsertCattle stores a new animal and returns its generated id.
func (r *Repository) InsertCattle(ctx context.Context, c models.Cattle) (string, error) {
	c.ID = ""
	return r.insertOne(ctx, cattleCollection, c)
}

// ListCattle returns every animal ordered by name.
func (r *Repository) ListCattle(ctx context.Context) ([]models.Cattle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.coll(cattleCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapStoreErr("list cattle", err)
	}

	var cattle []models.Cattle
	if err := cursor.All(ctx, &cattle); err != nil {
		return nil, wrapStoreErr("decode cattle", err)
	}
	return cattle, nil
}

// GetCattle fetches one animal by id.
func (r *Repository) GetCattle(ctx context.Context, id string) (models.Cattle, error) {
	oid, err := objectID(id)
	if err != nil {
		return models.Cattle{}, err
	}

	var c models.Cattle
	err = r.coll(cattleCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Cattle{}, ErrNotFound
	}
	if err != nil {
		return models.Cattle{}, wrapStoreErr("get cattle", err)
	}
	return c, nil
}

// UpdateCattle replaces the stored animal document.
func (r *Repository) UpdateCattle(ctx context.Context, id string, c models.Cattle) error {
	c.ID = ""
	return r.replaceByID(ctx, cattleCollection, id, c)
}

// SetTodayMilk updates the animal's denormalized today's-production field.
func (r *Repository) SetTodayMilk(ctx context.Context, id string, liters float64) error {
	return r.setFields(ctx, cattleCollection, id, bson.M{"todayMilkProduction": liters})
}

// SetLastWeight updates the animal's denormalized last weigh-in fields.
func (r *Repository) SetLastWeight(ctx context.Context, id string, weightKg float64, weightDate string) error {
	return r.setFields(ctx, cattleCollection, id, bson.M{"lastWeight": weightKg, "lastWeightDate": weightDate})
}

// SetHealthStatus updates the animal's denormalized health status.
func (r *Repository) SetHealthStatus(ctx context.Context, id string, status models.HealthStatus) error {
	return r.setFields(ctx, cattleCollection, id, bson.M{"healthStatus": status})
}

// DeleteCattle removes one animal. Dependent milk/weight/medical records are
// NOT removed; see Repository.DeleteOrphaned* and the herd service cleanup.
func (r *Repository) DeleteCattle(ctx context.Context, id string) error {
	return r.deleteByID(ctx, cattleCollection, id)
}

// WatchCattle streams full name-ordered snapshots of the cattle collection.
func (r *Repository) WatchCattle(ctx context.Context) (<-chan []models.Cattle, error) {
	return watchSnapshots(ctx, r, cattleCollection, r.ListCattle)
}
