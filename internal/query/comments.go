package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommentList builds the per-video comment listing pipeline with the
// owner summary, like count and viewer-relative isLiked.
func CommentList(videoID primitive.ObjectID, viewer Viewer) mongo.Pipeline {
	sort, _ := SortStage("", "", nil)

	return New().
		Match(bson.M{"video": videoID}).
		LookupPipeline("users", "owner", "_id", "owner", mongo.Pipeline{
			bson.D{{Key: "$project", Value: bson.M{
				"username":   1,
				"fullName":   1,
				"avatar.url": 1,
			}}},
		}).
		Lookup("likes", "_id", "comment", "likes").
		AddFields(bson.M{
			"likesCount": sizeOf("$likes"),
			"owner":      firstOf("$owner"),
			"isLiked":    viewer.MemberOf("$likes.likedBy"),
		}).
		Sort(sort).
		Project(bson.M{
			"content":    1,
			"createdAt":  1,
			"likesCount": 1,
			"owner":      1,
			"isLiked":    1,
		}).
		Pipeline()
}
