package models

import (
	"go.mongodb.org/mongo-driver/bson"
)

// Document is a stored record passed through as-is. Products, reviews,
// cart items and user profiles are all kept in this shape.
type Document = bson.M

// StringField returns d[key] when it holds a non-empty string.
func StringField(d Document, key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok && s != ""
}
