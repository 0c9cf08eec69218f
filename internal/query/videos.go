package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// VideoSortFields are the caller-selectable sort keys for listings.
var VideoSortFields = []string{"createdAt", "views", "duration", "title"}

// VideoListOptions are the filter/sort parameters of the video listing.
type VideoListOptions struct {
	Search   string
	OwnerID  *primitive.ObjectID
	SortBy   string
	SortType string
}

// VideoList builds the published-video listing pipeline. When a search
// term is supplied it wins silently over the owner filter; the two are
// never merged.
func VideoList(opts VideoListOptions) (mongo.Pipeline, error) {
	b := New()

	if opts.Search != "" {
		b.TextSearch(opts.Search)
	} else if opts.OwnerID != nil {
		b.Match(bson.M{"owner": *opts.OwnerID})
	}

	b.Match(bson.M{"isPublished": true})

	sort, err := SortStage(opts.SortBy, opts.SortType, VideoSortFields)
	if err != nil {
		return nil, err
	}
	b.Sort(sort)

	b.LookupPipeline("users", "owner", "_id", "owner", mongo.Pipeline{
		bson.D{{Key: "$project", Value: bson.M{
			"username":   1,
			"fullName":   1,
			"avatar.url": 1,
		}}},
	})
	b.Unwind("$owner")

	b.Project(bson.M{
		"title":       1,
		"description": 1,
		"thumbnail":   1,
		"duration":    1,
		"views":       1,
		"createdAt":   1,
		"owner":       1,
	})

	return b.Pipeline(), nil
}

// VideoSnapshot builds the pipeline producing the denormalized copy of
// a video embedded into playlists: the video with a minimal owner
// summary, nothing viewer-relative.
func VideoSnapshot(videoID primitive.ObjectID) mongo.Pipeline {
	return New().
		Match(bson.M{"_id": videoID}).
		LookupPipeline("users", "owner", "_id", "owner", mongo.Pipeline{
			bson.D{{Key: "$project", Value: bson.M{
				"username": 1,
				"avatar":   1,
			}}},
		}).
		Unwind("$owner").
		Project(bson.M{
			"videoFile": 1,
			"thumbnail": 1,
			"title":     1,
			"duration":  1,
			"views":     1,
			"createdAt": 1,
			"owner":     1,
		}).
		Pipeline()
}

// VideoDetail builds the single-video pipeline: likes joined for the
// like count, the owner joined with subscriber data, and the
// viewer-relative isLiked/isSubscribed fields.
func VideoDetail(videoID primitive.ObjectID, viewer Viewer) mongo.Pipeline {
	ownerSub := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "subscriptions",
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribers",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"subscriberCount": sizeOf("$subscribers"),
			"isSubscribed":    viewer.MemberOf("$subscribers.subscriber"),
		}}},
		bson.D{{Key: "$project", Value: bson.M{
			"username":        1,
			"avatar.url":      1,
			"subscriberCount": 1,
			"isSubscribed":    1,
		}}},
	}

	return New().
		Match(bson.M{"_id": videoID}).
		Lookup("likes", "_id", "video", "likes").
		LookupPipeline("users", "owner", "_id", "owner", ownerSub).
		AddFields(bson.M{
			"likesCount": sizeOf("$likes"),
			"isLiked":    viewer.MemberOf("$likes.likedBy"),
			"owner":      firstOf("$owner"),
		}).
		Project(bson.M{
			"videoFile.url": 1,
			"thumbnail.url": 1,
			"title":         1,
			"description":   1,
			"views":         1,
			"createdAt":     1,
			"duration":      1,
			"owner":         1,
			"likesCount":    1,
			"isLiked":       1,
		}).
		Pipeline()
}
