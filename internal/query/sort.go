package query

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/viewtube/backend/internal/apperr"
)

// SortStage builds a sort stage from caller-supplied parameters,
// constrained to the allowed field list so arbitrary fields cannot be
// injected. Default is createdAt descending. A deterministic _id
// ascending tie-break is always appended so pagination is stable for
// equal sort keys.
func SortStage(sortBy, sortType string, allowed []string) (bson.D, error) {
	field := "createdAt"
	dir := -1

	if sortBy != "" {
		ok := false
		for _, f := range allowed {
			if f == sortBy {
				ok = true
				break
			}
		}
		if !ok {
			return nil, apperr.New(apperr.InvalidArgument, "cannot sort by field: "+sortBy)
		}
		field = sortBy
		if sortType == "asc" {
			dir = 1
		} else {
			dir = -1
		}
	}

	keys := bson.D{{Key: field, Value: dir}}
	if field != "_id" {
		keys = append(keys, bson.E{Key: "_id", Value: 1})
	}
	return bson.D{{Key: "$sort", Value: keys}}, nil
}
