package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

type SubscriptionRepository struct {
	subscriptions *mongo.Collection
}

func NewSubscriptionRepository(db *mongo.Database) *SubscriptionRepository {
	return &SubscriptionRepository{subscriptions: db.Collection("subscriptions")}
}

// Toggle flips the subscription state for (subscriber, channel) and
// returns the new state. Subscribing to yourself is rejected. The
// unique index on the pair is the real uniqueness guarantee; the read
// is only the fast path.
func (r *SubscriptionRepository) Toggle(ctx context.Context, channelID, subscriberID primitive.ObjectID) (bool, error) {
	if channelID == subscriberID {
		return false, apperr.New(apperr.InvalidArgument, "cannot subscribe to your own channel")
	}

	filter := bson.M{"subscriber": subscriberID, "channel": channelID}

	var existing models.Subscription
	err := r.subscriptions.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		if _, err := r.subscriptions.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			return false, apperr.Wrap(apperr.Upstream, "failed to unsubscribe", err)
		}
		return false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		sub := &models.Subscription{
			ID:         primitive.NewObjectID(),
			Channel:    channelID,
			Subscriber: subscriberID,
			CreatedAt:  time.Now().UTC(),
		}
		if _, err := r.subscriptions.InsertOne(ctx, sub); err != nil {
			if isDuplicateKey(err) {
				return true, nil
			}
			return false, apperr.Wrap(apperr.Upstream, "failed to subscribe", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to look up subscription: %w", err)
	}
}

// Subscribers lists the users subscribed to a channel.
func (r *SubscriptionRepository) Subscribers(ctx context.Context, channelID primitive.ObjectID, page query.PageRequest) (*query.Page[models.ChannelSubscriber], error) {
	result, err := query.Paginate[models.ChannelSubscriber](ctx, r.subscriptions, query.ChannelSubscribers(channelID), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list subscribers", err)
	}
	return result, nil
}

// SubscribedChannels lists the channels a user subscribes to.
func (r *SubscriptionRepository) SubscribedChannels(ctx context.Context, subscriberID primitive.ObjectID, page query.PageRequest) (*query.Page[models.SubscribedChannel], error) {
	result, err := query.Paginate[models.SubscribedChannel](ctx, r.subscriptions, query.SubscribedChannels(subscriberID), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list subscribed channels", err)
	}
	return result, nil
}

// CountForChannel counts a channel's subscribers.
func (r *SubscriptionRepository) CountForChannel(ctx context.Context, channelID primitive.ObjectID) (int64, error) {
	n, err := r.subscriptions.CountDocuments(ctx, bson.M{"channel": channelID})
	if err != nil {
		return 0, apperr.Wrap(apperr.Upstream, "failed to count subscribers", err)
	}
	return n, nil
}
