package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Subscription struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Channel    primitive.ObjectID `json:"channel" bson:"channel"`
	Subscriber primitive.ObjectID `json:"subscriber" bson:"subscriber"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// ChannelSubscriber is one row of the subscriber-list aggregation:
// a subscriber profile plus whether the channel subscribes back.
type ChannelSubscriber struct {
	Subscriber struct {
		ID                     primitive.ObjectID `json:"id" bson:"_id"`
		Username               string             `json:"username" bson:"username"`
		FullName               string             `json:"fullName" bson:"fullName"`
		Avatar                 *MediaFile         `json:"avatar,omitempty" bson:"avatar,omitempty"`
		SubscribedToSubscriber bool               `json:"subscribedToSubscriber" bson:"subscribedToSubscriber"`
		SubscribersCount       int64              `json:"subscribersCount" bson:"subscribersCount"`
	} `json:"subscriber" bson:"subscriber"`
}

// SubscribedChannel is one row of the subscribed-channels aggregation.
type SubscribedChannel struct {
	Channel struct {
		ID       primitive.ObjectID `json:"id" bson:"_id"`
		Username string             `json:"username" bson:"username"`
		FullName string             `json:"fullName" bson:"fullName"`
		Avatar   *MediaFile         `json:"avatar,omitempty" bson:"avatar,omitempty"`
	} `json:"channel" bson:"channel"`
}

// ChannelStats aggregates a channel's totals for the dashboard.
type ChannelStats struct {
	TotalSubscribers int64 `json:"totalSubscribers"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
}
