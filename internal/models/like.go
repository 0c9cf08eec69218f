package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like references exactly one target: video, comment or tweet. The
// unset references stay absent from the document so the per-target
// unique indexes apply.
type Like struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Video     *primitive.ObjectID `json:"video,omitempty" bson:"video,omitempty"`
	Comment   *primitive.ObjectID `json:"comment,omitempty" bson:"comment,omitempty"`
	Tweet     *primitive.ObjectID `json:"tweet,omitempty" bson:"tweet,omitempty"`
	LikedBy   primitive.ObjectID  `json:"likedBy" bson:"likedBy"`
	CreatedAt time.Time           `json:"createdAt" bson:"createdAt"`
}

// LikeTarget names the field a like attaches to.
type LikeTarget string

const (
	LikeTargetVideo   LikeTarget = "video"
	LikeTargetComment LikeTarget = "comment"
	LikeTargetTweet   LikeTarget = "tweet"
)

// LikedVideo is one row of the liked-videos aggregation: the like's
// video joined with its owner summary.
type LikedVideo struct {
	ID    primitive.ObjectID `json:"id" bson:"_id"`
	Video struct {
		ID        primitive.ObjectID `json:"id" bson:"_id"`
		Title     string             `json:"title" bson:"title"`
		VideoFile MediaFile          `json:"videoFile" bson:"videoFile"`
		Thumbnail MediaFile          `json:"thumbnail" bson:"thumbnail"`
		Duration  float64            `json:"duration" bson:"duration"`
		Views     int64              `json:"views" bson:"views"`
		CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	} `json:"video" bson:"likedVideo"`
	Owner OwnerSummary `json:"owner" bson:"owner"`
}
