package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WatchHistory builds the watch-history listing for a user: the
// history's video references joined with each video's owner summary.
// Runs against the users collection.
func WatchHistory(userID primitive.ObjectID) mongo.Pipeline {
	videoSub := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "owner",
			"foreignField": "_id",
			"as":           "owner",
			"pipeline": mongo.Pipeline{
				bson.D{{Key: "$project", Value: bson.M{
					"username":   1,
					"fullName":   1,
					"avatar.url": 1,
				}}},
			},
		}}},
		bson.D{{Key: "$unwind", Value: "$owner"}},
		bson.D{{Key: "$project", Value: bson.M{
			"title":         1,
			"thumbnail.url": 1,
			"duration":      1,
			"views":         1,
			"createdAt":     1,
			"owner":         1,
		}}},
	}

	return New().
		Match(bson.M{"_id": userID}).
		LookupPipeline("videos", "watchHistory", "_id", "watchHistory", videoSub).
		Unwind("$watchHistory").
		Project(bson.M{
			"_id":          0,
			"watchHistory": 1,
		}).
		Pipeline()
}
