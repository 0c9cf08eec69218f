package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/apperr"
)

// ParseID validates the hex syntax of an entity identifier. It does not
// check existence; a well-formed id for an absent entity surfaces later
// as NotFound.
func ParseID(s string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.InvalidArgument, "invalid id: "+s, err)
	}
	return id, nil
}
