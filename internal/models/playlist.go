package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlaylistVideo is a denormalized snapshot of a video taken at the time
// it was added. It is intentionally not kept in sync with the source
// video; edits after the add are not reflected here.
type PlaylistVideo struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Title     string             `json:"title" bson:"title"`
	VideoFile MediaFile          `json:"videoFile" bson:"videoFile"`
	Thumbnail MediaFile          `json:"thumbnail" bson:"thumbnail"`
	Duration  float64            `json:"duration" bson:"duration"`
	Views     int64              `json:"views" bson:"views"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	Owner     OwnerSummary       `json:"owner" bson:"owner"`
}

type Playlist struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name        string             `json:"name" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Videos      []PlaylistVideo    `json:"videos" bson:"videos"`
	Owner       primitive.ObjectID `json:"owner" bson:"owner"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// Contains reports whether the playlist already holds the given video.
func (p *Playlist) Contains(videoID primitive.ObjectID) bool {
	for _, v := range p.Videos {
		if v.ID == videoID {
			return true
		}
	}
	return false
}

type PlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}
