package controllers

import (
	"context"
	"net/http"
	"time"

	"laptop-gallery/models"
	"laptop-gallery/utils"
)

type ProductStore interface {
	List(ctx context.Context) ([]models.Document, error)
}

type ReviewStore interface {
	List(ctx context.Context) ([]models.Document, error)
}

// CatalogController serves the read-only product and review collections
type CatalogController struct {
	Products ProductStore
	Reviews  ReviewStore
	Timeout  time.Duration
}

func NewCatalogController(products ProductStore, reviews ReviewStore, timeout time.Duration) *CatalogController {
	return &CatalogController{Products: products, Reviews: reviews, Timeout: timeout}
}

// GetProducts retrieves all products
func (pc *CatalogController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := utils.StoreContext(r.Context(), pc.Timeout)
	defer cancel()

	products, err := pc.Products.List(ctx)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GetReviews retrieves all reviews
func (pc *CatalogController) GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := utils.StoreContext(r.Context(), pc.Timeout)
	defer cancel()

	reviews, err := pc.Reviews.List(ctx)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, reviews)
}
