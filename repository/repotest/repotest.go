// Package repotest provides in-memory versions of the repositories for
// handler and middleware tests.
package repotest

import (
	"context"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"laptop-gallery/models"
	"laptop-gallery/repository"
)

// Store bundles one in-memory repository per collection.
type Store struct {
	Users    *Users
	Products *Collection
	Reviews  *Collection
	Carts    *Carts

	calls atomic.Int64
	err   error
}

func NewStore() *Store {
	s := &Store{}
	s.Users = &Users{s: s}
	s.Products = &Collection{s: s}
	s.Reviews = &Collection{s: s}
	s.Carts = &Carts{s: s}
	return s
}

// Calls reports how many store operations have run.
func (s *Store) Calls() int64 { return s.calls.Load() }

// Fail makes every subsequent operation return err.
func (s *Store) Fail(err error) { s.err = err }

func (s *Store) hit() error {
	s.calls.Add(1)
	return s.err
}

func clone(d models.Document) models.Document {
	c := make(models.Document, len(d))
	for k, v := range d {
		c[k] = v
	}
	return c
}

// withID copies d and gives it a fresh ObjectID when it has no _id.
func withID(d models.Document) models.Document {
	c := clone(d)
	if _, ok := c["_id"]; !ok {
		c["_id"] = primitive.NewObjectID()
	}
	return c
}

func cloneAll(docs []models.Document) []models.Document {
	out := make([]models.Document, 0, len(docs))
	for _, d := range docs {
		out = append(out, clone(d))
	}
	return out
}

func indexOf(docs []models.Document, id primitive.ObjectID) int {
	for i, d := range docs {
		if d["_id"] == id {
			return i
		}
	}
	return -1
}

// Collection is a read-only list of documents, used for products and reviews.
type Collection struct {
	s    *Store
	mu   sync.Mutex
	docs []models.Document
}

func (c *Collection) Seed(d models.Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = append(c.docs, withID(d))
}

func (c *Collection) List(ctx context.Context) ([]models.Document, error) {
	if err := c.s.hit(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return cloneAll(c.docs), nil
}

type Users struct {
	s  *Store
	mu sync.Mutex
	// insertion order is kept so List is deterministic
	docs []models.Document
}

// Seed stores d directly and returns its id, assigning one when missing.
func (r *Users) Seed(d models.Document) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	d = withID(d)
	r.docs = append(r.docs, d)
	id, _ := d["_id"].(primitive.ObjectID)
	return id
}

func (r *Users) List(ctx context.Context) ([]models.Document, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAll(r.docs), nil
}

func (r *Users) ByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d["email"] == email {
			role, _ := d["role"].(string)
			return &models.User{Email: email, Role: models.Role(role)}, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *Users) InsertIfAbsent(ctx context.Context, email string, profile models.Document) (models.InsertResult, error) {
	if err := r.s.hit(); err != nil {
		return models.InsertResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if d["email"] == email {
			return models.InsertResult{Acknowledged: true}, nil
		}
	}
	doc := withID(profile)
	doc["email"] = email
	r.docs = append(r.docs, doc)
	return models.InsertResult{Acknowledged: true, InsertedID: doc["_id"]}, nil
}

func (r *Users) PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error) {
	if err := r.s.hit(); err != nil {
		return models.UpdateResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res := models.UpdateResult{Acknowledged: true}
	if i := indexOf(r.docs, id); i >= 0 {
		res.MatchedCount = 1
		if r.docs[i]["role"] != string(models.RoleAdmin) {
			r.docs[i]["role"] = string(models.RoleAdmin)
			res.ModifiedCount = 1
		}
	}
	return res, nil
}

func (r *Users) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	if err := r.s.hit(); err != nil {
		return models.DeleteResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := indexOf(r.docs, id); i >= 0 {
		r.docs = append(r.docs[:i], r.docs[i+1:]...)
		return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
	}
	return models.DeleteResult{Acknowledged: true}, nil
}

type Carts struct {
	s    *Store
	mu   sync.Mutex
	docs []models.Document
}

func (r *Carts) ByEmail(ctx context.Context, email string) ([]models.Document, error) {
	if err := r.s.hit(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []models.Document{}
	for _, d := range r.docs {
		if d["email"] == email {
			items = append(items, clone(d))
		}
	}
	return items, nil
}

func (r *Carts) Insert(ctx context.Context, item models.Document) (models.InsertResult, error) {
	if err := r.s.hit(); err != nil {
		return models.InsertResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc := withID(item)
	r.docs = append(r.docs, doc)
	return models.InsertResult{Acknowledged: true, InsertedID: doc["_id"]}, nil
}

func (r *Carts) Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error) {
	if err := r.s.hit(); err != nil {
		return models.DeleteResult{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := indexOf(r.docs, id); i >= 0 {
		r.docs = append(r.docs[:i], r.docs[i+1:]...)
		return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
	}
	return models.DeleteResult{Acknowledged: true}, nil
}
