package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// collectionIndexes declares every index the application relies on.
// The unique compound indexes are what actually enforce the one-like
// and one-subscription invariants; the in-handler reads are only an
// optimization for the common case.
var collectionIndexes = map[string][]mongo.IndexModel{
	"users": {
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	},
	"videos": {
		{
			Keys: bson.D{{Key: "title", Value: "text"}, {Key: "description", Value: "text"}},
		},
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	},
	"comments": {
		{
			Keys: bson.D{{Key: "video", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	},
	"tweets": {
		{
			Keys: bson.D{{Key: "owner", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	},
	"likes": {
		{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "video", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"video": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "comment", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"comment": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "likedBy", Value: 1}, {Key: "tweet", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.M{"tweet": bson.M{"$exists": true}}),
		},
		{
			Keys: bson.D{{Key: "video", Value: 1}},
		},
	},
	"subscriptions": {
		{
			Keys:    bson.D{{Key: "subscriber", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "channel", Value: 1}},
		},
	},
	"playlists": {
		{
			Keys: bson.D{{Key: "owner", Value: 1}},
		},
	},
}

// EnsureIndexes creates all declared indexes. Creation is idempotent;
// existing identical indexes are left alone.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, indexes := range collectionIndexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", coll, err)
		}
	}
	return nil
}
