package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"laptop-gallery/models"
)

// listAll returns every document of coll untouched.
func listAll(ctx context.Context, coll *mongo.Collection, filter bson.M) ([]models.Document, error) {
	cursor, err := coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", coll.Name(), err)
	}
	docs := []models.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("read %s: %w", coll.Name(), err)
	}
	return docs, nil
}

type ProductRepo struct{ coll *mongo.Collection }

func NewProductRepo(db *mongo.Database) *ProductRepo {
	return &ProductRepo{coll: db.Collection(ProductsCollection)}
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Document, error) {
	return listAll(ctx, r.coll, bson.M{})
}

type ReviewRepo struct{ coll *mongo.Collection }

func NewReviewRepo(db *mongo.Database) *ReviewRepo {
	return &ReviewRepo{coll: db.Collection(ReviewsCollection)}
}

func (r *ReviewRepo) List(ctx context.Context) ([]models.Document, error) {
	return listAll(ctx, r.coll, bson.M{})
}
