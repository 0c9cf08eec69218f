package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChannelVideoStats builds the per-channel video totals: every owned
// video's like count and views summed into a single row.
func ChannelVideoStats(ownerID primitive.ObjectID) mongo.Pipeline {
	return New().
		Match(bson.M{"owner": ownerID}).
		Lookup("likes", "_id", "video", "likes").
		Project(bson.M{
			"likesCount": sizeOf("$likes"),
			"views":      1,
		}).
		Group(bson.M{
			"_id":         nil,
			"totalLikes":  bson.M{"$sum": "$likesCount"},
			"totalViews":  bson.M{"$sum": "$views"},
			"totalVideos": bson.M{"$sum": 1},
		}).
		Pipeline()
}

// ChannelVideos builds the channel owner's own video listing,
// unpublished videos included.
func ChannelVideos(ownerID primitive.ObjectID) mongo.Pipeline {
	sort, _ := SortStage("", "", nil)

	return New().
		Match(bson.M{"owner": ownerID}).
		Lookup("likes", "_id", "video", "likes").
		AddFields(bson.M{
			"likesCount": sizeOf("$likes"),
		}).
		Sort(sort).
		Project(bson.M{
			"videoFile.url": 1,
			"thumbnail.url": 1,
			"title":         1,
			"description":   1,
			"isPublished":   1,
			"likesCount":    1,
			"views":         1,
			"duration":      1,
			"createdAt":     1,
		}).
		Pipeline()
}
