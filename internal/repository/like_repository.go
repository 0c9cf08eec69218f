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

type LikeRepository struct {
	likes *mongo.Collection
}

func NewLikeRepository(db *mongo.Database) *LikeRepository {
	return &LikeRepository{likes: db.Collection("likes")}
}

// Toggle flips the like state for (liker, target) and returns the new
// state. Read-then-act: concurrent togglers may both see the absent
// state, in which case the unique index rejects the second insert and
// we report the pair as already liked.
func (r *LikeRepository) Toggle(ctx context.Context, target models.LikeTarget, targetID, likerID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"likedBy":      likerID,
		string(target): targetID,
	}

	var existing models.Like
	err := r.likes.FindOne(ctx, filter).Decode(&existing)
	switch {
	case err == nil:
		if _, err := r.likes.DeleteOne(ctx, bson.M{"_id": existing.ID}); err != nil {
			return false, apperr.Wrap(apperr.Upstream, "failed to remove like", err)
		}
		return false, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		like := bson.M{
			"_id":          primitive.NewObjectID(),
			"likedBy":      likerID,
			string(target): targetID,
			"createdAt":    time.Now().UTC(),
		}
		if _, err := r.likes.InsertOne(ctx, like); err != nil {
			if isDuplicateKey(err) {
				// A concurrent toggle won the race; the pair is liked,
				// which is the state this call wanted.
				return true, nil
			}
			return false, apperr.Wrap(apperr.Upstream, "failed to add like", err)
		}
		return true, nil
	default:
		return false, fmt.Errorf("failed to look up like: %w", err)
	}
}

// CountForTarget counts likes on a single entity.
func (r *LikeRepository) CountForTarget(ctx context.Context, target models.LikeTarget, targetID primitive.ObjectID) (int64, error) {
	n, err := r.likes.CountDocuments(ctx, bson.M{string(target): targetID})
	if err != nil {
		return 0, apperr.Wrap(apperr.Upstream, "failed to count likes", err)
	}
	return n, nil
}

// LikedVideos lists the videos a viewer has liked.
func (r *LikeRepository) LikedVideos(ctx context.Context, likerID primitive.ObjectID, page query.PageRequest) (*query.Page[models.LikedVideo], error) {
	result, err := query.Paginate[models.LikedVideo](ctx, r.likes, query.LikedVideos(likerID), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list liked videos", err)
	}
	return result, nil
}
