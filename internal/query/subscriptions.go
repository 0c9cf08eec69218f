package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChannelSubscribers builds the subscriber list of a channel. Each
// subscriber carries whether the channel subscribes back and their own
// subscriber count.
func ChannelSubscribers(channelID primitive.ObjectID) mongo.Pipeline {
	channelViewer := NewViewer(channelID)
	sort, _ := SortStage("", "", nil)

	subscriberSub := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "subscriptions",
			"localField":   "_id",
			"foreignField": "channel",
			"as":           "subscribedToSubscriber",
		}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"subscribedToSubscriber": channelViewer.MemberOf("$subscribedToSubscriber.subscriber"),
			"subscribersCount":       sizeOf("$subscribedToSubscriber"),
		}}},
	}

	return New().
		Match(bson.M{"channel": channelID}).
		Sort(sort).
		LookupPipeline("users", "subscriber", "_id", "subscriber", subscriberSub).
		Unwind("$subscriber").
		Project(bson.M{
			"_id": 0,
			"subscriber": bson.M{
				"_id":                    1,
				"username":               1,
				"fullName":               1,
				"avatar.url":             1,
				"subscribedToSubscriber": 1,
				"subscribersCount":       1,
			},
		}).
		Pipeline()
}

// SubscribedChannels builds the channel list a user has subscribed to.
func SubscribedChannels(subscriberID primitive.ObjectID) mongo.Pipeline {
	sort, _ := SortStage("", "", nil)

	return New().
		Match(bson.M{"subscriber": subscriberID}).
		Sort(sort).
		LookupPipeline("users", "channel", "_id", "channel", mongo.Pipeline{
			bson.D{{Key: "$project", Value: bson.M{
				"username":   1,
				"fullName":   1,
				"avatar.url": 1,
			}}},
		}).
		Unwind("$channel").
		Project(bson.M{
			"_id":     0,
			"channel": 1,
		}).
		Pipeline()
}
