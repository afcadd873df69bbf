package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"

	"laptop-gallery/logging"
	"laptop-gallery/models"
	"laptop-gallery/repository"
	"laptop-gallery/utils"
)

const (
	msgBadBody       = "invalid request body"
	msgEmailRequired = "email is required"
)

// decodeDocument reads a JSON object body into a Document that keeps every
// field the client sent. Numbers stay numbers in storage: integers become
// int64 and everything else float64.
func decodeDocument(w http.ResponseWriter, r *http.Request) (models.Document, bool) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	var raw map[string]interface{}
	if err := dec.Decode(&raw); err != nil || raw == nil {
		utils.WriteMessage(w, http.StatusBadRequest, msgBadBody)
		return nil, false
	}
	return normalize(raw).(bson.M), true
}

func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]interface{}:
		m := make(bson.M, len(t))
		for k, e := range t {
			m[k] = normalize(e)
		}
		return m
	case []interface{}:
		a := make(bson.A, len(t))
		for i, e := range t {
			a[i] = normalize(e)
		}
		return a
	default:
		return v
	}
}

// writeStoreError maps a repository failure to a response.
func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrInvalidID):
		utils.WriteMessage(w, http.StatusBadRequest, "invalid id")
	case errors.Is(err, repository.ErrNotFound):
		utils.WriteMessage(w, http.StatusNotFound, "not found")
	default:
		logging.FromContext(r.Context()).Error("store operation failed", "error", err)
		utils.WriteMessage(w, http.StatusInternalServerError, "internal server error")
	}
}
