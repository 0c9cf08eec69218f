package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// LikedVideos builds the liked-video listing for a viewer: each video
// like joined with its video and the video's owner summary.
func LikedVideos(likerID primitive.ObjectID) mongo.Pipeline {
	sort, _ := SortStage("", "", nil)

	return New().
		Match(bson.M{
			"likedBy": likerID,
			"video":   bson.M{"$exists": true},
		}).
		Lookup("videos", "video", "_id", "likedVideo").
		Unwind("$likedVideo").
		Lookup("users", "likedVideo.owner", "_id", "owner").
		Unwind("$owner").
		Sort(sort).
		Project(bson.M{
			"likedVideo._id":           1,
			"likedVideo.title":         1,
			"likedVideo.videoFile.url": 1,
			"likedVideo.thumbnail.url": 1,
			"likedVideo.views":         1,
			"likedVideo.duration":      1,
			"likedVideo.createdAt":     1,
			"owner._id":                1,
			"owner.username":           1,
			"owner.avatar.url":         1,
		}).
		Pipeline()
}
