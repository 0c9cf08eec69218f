package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaFile is an uploaded object: public URL plus the storage key
// needed to delete it later.
type MediaFile struct {
	URL string `json:"url" bson:"url"`
	Key string `json:"-" bson:"key"`
}

type Video struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   MediaFile          `json:"videoFile" bson:"videoFile"`
	Thumbnail   MediaFile          `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	IsPublished bool               `json:"isPublished" bson:"isPublished"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// VideoListItem is one row of the video listing aggregation.
type VideoListItem struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Thumbnail   MediaFile          `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Owner       OwnerSummary       `json:"owner" bson:"owner"`
}

// VideoDetail is the single-video aggregation result with
// viewer-relative fields computed in the pipeline.
type VideoDetail struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	VideoFile   MediaFile          `json:"videoFile" bson:"videoFile"`
	Thumbnail   MediaFile          `json:"thumbnail" bson:"thumbnail"`
	Duration    float64            `json:"duration" bson:"duration"`
	Views       int64              `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	Owner       ChannelProfile     `json:"owner" bson:"owner"`
	LikesCount  int64              `json:"likesCount" bson:"likesCount"`
	IsLiked     bool               `json:"isLiked" bson:"isLiked"`
}

type UpdateVideoRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}
