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

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{users: db.Collection("users")}
}

// Create inserts a new user. Email and username collisions surface as
// Conflict.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	user.ID = primitive.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if isDuplicateKey(err) {
			return apperr.Wrap(apperr.Conflict, "email or username already taken", err)
		}
		return apperr.Wrap(apperr.Upstream, "failed to create user", err)
	}
	return nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetByID retrieves a user by id
func (r *UserRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// RecordWatch appends a video to the user's watch history. $addToSet
// keeps the history deduplicated.
func (r *UserRepository) RecordWatch(ctx context.Context, userID, videoID primitive.ObjectID) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$addToSet": bson.M{"watchHistory": videoID}},
	)
	if err != nil {
		return fmt.Errorf("failed to record watch: %w", err)
	}
	return nil
}

// WatchHistory returns the user's watch history joined with each
// video's owner summary.
func (r *UserRepository) WatchHistory(ctx context.Context, userID primitive.ObjectID, page query.PageRequest) (*query.Page[models.WatchHistoryItem], error) {
	type row struct {
		WatchHistory models.WatchHistoryItem `bson:"watchHistory"`
	}

	result, err := query.Paginate[row](ctx, r.users, query.WatchHistory(userID), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to load watch history", err)
	}

	out := &query.Page[models.WatchHistoryItem]{
		Docs:       make([]models.WatchHistoryItem, 0, len(result.Docs)),
		TotalDocs:  result.TotalDocs,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
		HasNext:    result.HasNext,
		HasPrev:    result.HasPrev,
	}
	for _, d := range result.Docs {
		out.Docs = append(out.Docs, d.WatchHistory)
	}
	return out, nil
}
