package query

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// PageRequest is a 1-indexed page selection with a bounded size.
type PageRequest struct {
	Page  int64
	Limit int64
}

// NewPageRequest clamps page to >= 1 and limit to [1, MaxPageSize],
// defaulting limit to DefaultPageSize when unset.
func NewPageRequest(page, limit int64) PageRequest {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return PageRequest{Page: page, Limit: limit}
}

// Page is one bounded slice of an aggregation's results plus paging
// metadata.
type Page[T any] struct {
	Docs       []T   `json:"docs"`
	TotalDocs  int64 `json:"totalDocs"`
	Page       int64 `json:"page"`
	Limit      int64 `json:"limit"`
	TotalPages int64 `json:"totalPages"`
	HasNext    bool  `json:"hasNextPage"`
	HasPrev    bool  `json:"hasPrevPage"`
}

// facetStage wraps a pipeline so one round trip yields both the total
// count and the requested slice.
func facetStage(req PageRequest) bson.D {
	return bson.D{{Key: "$facet", Value: bson.M{
		"metadata": mongo.Pipeline{
			bson.D{{Key: "$count", Value: "total"}},
		},
		"docs": mongo.Pipeline{
			bson.D{{Key: "$skip", Value: (req.Page - 1) * req.Limit}},
			bson.D{{Key: "$limit", Value: req.Limit}},
		},
	}}}
}

// totalPages computes the page count for a total and limit.
func totalPages(total, limit int64) int64 {
	if total == 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// Paginate executes pipeline against coll and returns the page
// selected by req. A page beyond the last returns empty docs, not an
// error. The same pipeline and request against unchanged data return
// identical results; sort stages built by SortStage guarantee the
// ordering is deterministic.
func Paginate[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, req PageRequest) (*Page[T], error) {
	req = NewPageRequest(req.Page, req.Limit)

	full := make(mongo.Pipeline, 0, len(pipeline)+1)
	full = append(full, pipeline...)
	full = append(full, facetStage(req))

	cursor, err := coll.Aggregate(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("failed to execute paginated aggregation: %w", err)
	}
	defer cursor.Close(ctx)

	var out []struct {
		Metadata []struct {
			Total int64 `bson:"total"`
		} `bson:"metadata"`
		Docs []T `bson:"docs"`
	}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode paginated aggregation: %w", err)
	}

	page := &Page[T]{
		Docs:  []T{},
		Page:  req.Page,
		Limit: req.Limit,
	}
	if len(out) > 0 {
		if out[0].Docs != nil {
			page.Docs = out[0].Docs
		}
		if len(out[0].Metadata) > 0 {
			page.TotalDocs = out[0].Metadata[0].Total
		}
	}
	page.TotalPages = totalPages(page.TotalDocs, req.Limit)
	page.HasNext = req.Page < page.TotalPages
	page.HasPrev = req.Page > 1 && page.TotalDocs > 0

	return page, nil
}
