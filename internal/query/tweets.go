package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TweetList builds the per-user tweet listing pipeline.
func TweetList(ownerID primitive.ObjectID, viewer Viewer) mongo.Pipeline {
	sort, _ := SortStage("", "", nil)

	return New().
		Match(bson.M{"owner": ownerID}).
		LookupPipeline("users", "owner", "_id", "owner", mongo.Pipeline{
			bson.D{{Key: "$project", Value: bson.M{
				"username":   1,
				"avatar.url": 1,
			}}},
		}).
		LookupPipeline("likes", "_id", "tweet", "likes", mongo.Pipeline{
			bson.D{{Key: "$project", Value: bson.M{
				"likedBy": 1,
			}}},
		}).
		AddFields(bson.M{
			"likesCount": sizeOf("$likes"),
			"owner":      firstOf("$owner"),
			"isLiked":    viewer.MemberOf("$likes.likedBy"),
		}).
		Sort(sort).
		Project(bson.M{
			"content":    1,
			"owner":      1,
			"likesCount": 1,
			"createdAt":  1,
			"isLiked":    1,
		}).
		Pipeline()
}
