// Package repository holds the collection-level operations behind each
// route. Every method is a single store call.
package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"laptop-gallery/models"
)

// Collection names inside the gallery database.
const (
	UsersCollection    = "users"
	ProductsCollection = "products"
	ReviewsCollection  = "reviews"
	CartsCollection    = "carts"
)

var (
	// ErrInvalidID is returned when a path identifier is not a 24-char hex ObjectID.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound is returned by single-document lookups that match nothing.
	ErrNotFound = errors.New("not found")
)

// ParseID converts a transport-level identifier into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

func insertResult(res *mongo.InsertOneResult) models.InsertResult {
	return models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) models.UpdateResult {
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func deleteResult(res *mongo.DeleteResult) models.DeleteResult {
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}
}
