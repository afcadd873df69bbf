package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"laptop-gallery/models"
)

type UserRepo struct{ coll *mongo.Collection }

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(UsersCollection)}
}

func (r *UserRepo) List(ctx context.Context) ([]models.Document, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []models.Document{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	return users, nil
}

// ByEmail loads only the email and role of a user. A role that is not a
// string is read as no role.
func (r *UserRepo) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc models.Document
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "email": 1, "role": 1})
	err := r.coll.FindOne(ctx, bson.M{"email": email}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user %q: %w", email, err)
	}
	role, _ := models.StringField(doc, "role")
	return &models.User{Email: email, Role: models.Role(role)}, nil
}

// InsertIfAbsent stores profile for email unless a user with that email
// exists. The upsert only sets fields on insert, so an existing record is
// left as is and the returned InsertedID is nil. The email comes from the
// filter and must not appear in profile.
func (r *UserRepo) InsertIfAbsent(ctx context.Context, email string, profile models.Document) (models.InsertResult, error) {
	update := bson.M{}
	if len(profile) > 0 {
		update["$setOnInsert"] = profile
	} else {
		update["$setOnInsert"] = bson.M{"email": email}
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"email": email},
		update,
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return models.InsertResult{}, fmt.Errorf("upsert user %q: %w", email, err)
	}
	return models.InsertResult{Acknowledged: true, InsertedID: res.UpsertedID}, nil
}

func (r *UserRepo) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"role": string(models.RoleAdmin)}},
	)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("promote user %s: %w", id.Hex(), err)
	}
	return updateResult(res), nil
}

func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete user %s: %w", id.Hex(), err)
	}
	return deleteResult(res), nil
}
