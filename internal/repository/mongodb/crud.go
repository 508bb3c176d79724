package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (r *Repository) insertOne(ctx context.Context, coll string, doc any) (string, error) {
	res, err := r.coll(coll).InsertOne(ctx, doc)
	if err != nil {
		return "", wrapStoreErr("insert into "+coll, err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("insert into %s: unexpected id type %T", coll, res.InsertedID)
	}
	return oid.Hex(), nil
}

// replaceByID swaps the full document body, keeping the original _id. Fails
// with ErrNotFound when the id does not resolve.
func (r *Repository) replaceByID(ctx context.Context, coll, id string, doc any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll(coll).ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return wrapStoreErr("update "+coll, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// setFields applies a partial $set update, used by the best-effort
// denormalization hooks that only touch a couple of fields.
func (r *Repository) setFields(ctx context.Context, coll, id string, fields bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll(coll).UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return wrapStoreErr("update "+coll, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) deleteByID(ctx context.Context, coll, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}

	res, err := r.coll(coll).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return wrapStoreErr("delete from "+coll, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// deleteOrphans removes documents whose cattleId is not in the live id set.
func (r *Repository) deleteOrphans(ctx context.Context, coll string, liveCattleIDs []string) (int64, error) {
	if liveCattleIDs == nil {
		liveCattleIDs = []string{}
	}

	res, err := r.coll(coll).DeleteMany(ctx, bson.M{"cattleId": bson.M{"$nin": liveCattleIDs}})
	if err != nil {
		return 0, wrapStoreErr("cleanup "+coll, err)
	}
	return res.DeletedCount, nil
}
