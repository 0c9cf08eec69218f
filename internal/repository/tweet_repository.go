package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

type TweetRepository struct {
	tweets *mongo.Collection
}

func NewTweetRepository(db *mongo.Database) *TweetRepository {
	return &TweetRepository{tweets: db.Collection("tweets")}
}

// Create adds a tweet.
func (r *TweetRepository) Create(ctx context.Context, ownerID primitive.ObjectID, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "content cannot be empty")
	}

	now := time.Now().UTC()
	tweet := &models.Tweet{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.tweets.InsertOne(ctx, tweet); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to create tweet", err)
	}
	return tweet, nil
}

// ListByUser runs the per-user tweet aggregation and paginates it.
func (r *TweetRepository) ListByUser(ctx context.Context, ownerID primitive.ObjectID, viewer query.Viewer, page query.PageRequest) (*query.Page[models.TweetListItem], error) {
	result, err := query.Paginate[models.TweetListItem](ctx, r.tweets, query.TweetList(ownerID, viewer), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list tweets", err)
	}
	return result, nil
}

func (r *TweetRepository) getByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.tweets.FindOne(ctx, bson.M{"_id": id}).Decode(&tweet)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "tweet not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return &tweet, nil
}

// Update rewrites a tweet's content. Only the owner may update.
func (r *TweetRepository) Update(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, content string) (*models.Tweet, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "content cannot be empty")
	}

	tweet, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(tweet.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this tweet")
	}

	ownerID, _ := viewer.ID()
	res, err := r.tweets.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to update tweet", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "tweet not found")
	}

	tweet.Content = content
	return tweet, nil
}

// Delete removes a tweet. Only the owner may delete.
func (r *TweetRepository) Delete(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Tweet, error) {
	tweet, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(tweet.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this tweet")
	}

	ownerID, _ := viewer.ID()
	res, err := r.tweets.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to delete tweet", err)
	}
	if res.DeletedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "tweet not found")
	}
	return tweet, nil
}
