package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"laptop-gallery/models"
	"laptop-gallery/repository"
	"laptop-gallery/utils"
)

type UserStore interface {
	List(ctx context.Context) ([]models.Document, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
	InsertIfAbsent(ctx context.Context, email string, profile models.Document) (models.InsertResult, error)
	PromoteToAdmin(ctx context.Context, id primitive.ObjectID) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

// UserController handles user-related requests
type UserController struct {
	Users   UserStore
	Timeout time.Duration
}

func NewUserController(users UserStore, timeout time.Duration) *UserController {
	return &UserController{Users: users, Timeout: timeout}
}

// ListUsers returns every user (admin only)
func (uc *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := utils.StoreContext(r.Context(), uc.Timeout)
	defer cancel()

	users, err := uc.Users.List(ctx)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, users)
}

// IsAdmin reports whether the user behind the email path variable is an
// admin. Unknown users are not admins.
func (uc *UserController) IsAdmin(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := utils.StoreContext(r.Context(), uc.Timeout)
	defer cancel()

	user, err := uc.Users.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"admin": user.IsAdmin()})
}

// CreateUser records a user on first sign-in. Existing emails are left
// untouched and reported with a null insertedId.
func (uc *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	profile, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	email, ok := models.StringField(profile, "email")
	if !ok {
		utils.WriteMessage(w, http.StatusBadRequest, msgEmailRequired)
		return
	}
	delete(profile, "_id")
	delete(profile, "email")
	profile["role"] = string(models.RoleDefault)

	ctx, cancel := utils.StoreContext(r.Context(), uc.Timeout)
	defer cancel()

	result, err := uc.Users.InsertIfAbsent(ctx, email, profile)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	if result.InsertedID == nil {
		result.Message = "user already exists"
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// MakeAdmin grants the admin role to the user with the given id
func (uc *UserController) MakeAdmin(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	ctx, cancel := utils.StoreContext(r.Context(), uc.Timeout)
	defer cancel()

	result, err := uc.Users.PromoteToAdmin(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

func (uc *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	ctx, cancel := utils.StoreContext(r.Context(), uc.Timeout)
	defer cancel()

	result, err := uc.Users.Delete(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
