package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"laptop-gallery/models"
	"laptop-gallery/repository"
	"laptop-gallery/utils"
)

type CartStore interface {
	ByEmail(ctx context.Context, email string) ([]models.Document, error)
	Insert(ctx context.Context, item models.Document) (models.InsertResult, error)
	Delete(ctx context.Context, id primitive.ObjectID) (models.DeleteResult, error)
}

// CartController handles cart-related requests
type CartController struct {
	Carts   CartStore
	Timeout time.Duration
}

func NewCartController(carts CartStore, timeout time.Duration) *CartController {
	return &CartController{Carts: carts, Timeout: timeout}
}

// GetCart lists the cart items stored for the email query parameter
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	ctx, cancel := utils.StoreContext(r.Context(), cc.Timeout)
	defer cancel()

	items, err := cc.Carts.ByEmail(ctx, email)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

// AddToCart stores the request body as a cart item. Only email is
// checked; every other field is kept as sent.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	item, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	if _, ok := models.StringField(item, "email"); !ok {
		utils.WriteMessage(w, http.StatusBadRequest, msgEmailRequired)
		return
	}

	ctx, cancel := utils.StoreContext(r.Context(), cc.Timeout)
	defer cancel()

	result, err := cc.Carts.Insert(ctx, item)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}

// RemoveFromCart deletes one cart item by id. Deleting a missing item
// reports deletedCount 0.
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, err := repository.ParseID(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	ctx, cancel := utils.StoreContext(r.Context(), cc.Timeout)
	defer cancel()

	result, err := cc.Carts.Delete(ctx, id)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, result)
}
