package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"laptop-gallery/models"
)

type CartRepo struct{ coll *mongo.Collection }

func NewCartRepo(db *mongo.Database) *CartRepo {
	return &CartRepo{coll: db.Collection(CartsCollection)}
}

func (r *CartRepo) ByEmail(ctx context.Context, email string) ([]models.Document, error) {
	return listAll(ctx, r.coll, bson.M{"email": email})
}

// Insert stores item as given. The driver assigns an ObjectID when item
// carries no _id.
func (r *CartRepo) Insert(ctx context.Context, item models.Document) (models.InsertResult, error) {
	res, err := r.coll.InsertOne(ctx, item)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("insert cart item: %w", err)
	}
	return insertResult(res), nil
}

// Delete removes one cart item. A missing id is not an error; the result
// reports zero deletions.
func (r *CartRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete cart item %s: %w", id.Hex(), err)
	}
	return deleteResult(res), nil
}
