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

type CommentRepository struct {
	comments *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{comments: db.Collection("comments")}
}

// ListByVideo runs the per-video comment aggregation and paginates it.
func (r *CommentRepository) ListByVideo(ctx context.Context, videoID primitive.ObjectID, viewer query.Viewer, page query.PageRequest) (*query.Page[models.CommentListItem], error) {
	result, err := query.Paginate[models.CommentListItem](ctx, r.comments, query.CommentList(videoID, viewer), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list comments", err)
	}
	return result, nil
}

// Create adds a comment. Content must be non-empty after trimming.
func (r *CommentRepository) Create(ctx context.Context, videoID, ownerID primitive.ObjectID, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "content cannot be empty")
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		ID:        primitive.NewObjectID(),
		Content:   content,
		Video:     videoID,
		Owner:     ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.comments.InsertOne(ctx, comment); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to create comment", err)
	}
	return comment, nil
}

func (r *CommentRepository) getByID(ctx context.Context, id primitive.ObjectID) (*models.Comment, error) {
	var comment models.Comment
	err := r.comments.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "comment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return &comment, nil
}

// Update rewrites a comment's content. Only the owner may update; the
// existence check runs first so missing and forbidden stay distinct.
func (r *CommentRepository) Update(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperr.New(apperr.InvalidArgument, "content cannot be empty")
	}

	comment, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(comment.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this comment")
	}

	ownerID, _ := viewer.ID()
	res, err := r.comments.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"content": content, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to update comment", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "comment not found")
	}

	comment.Content = content
	return comment, nil
}

// Delete removes a comment. Only the owner may delete.
func (r *CommentRepository) Delete(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Comment, error) {
	comment, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(comment.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this comment")
	}

	ownerID, _ := viewer.ID()
	res, err := r.comments.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to delete comment", err)
	}
	if res.DeletedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "comment not found")
	}
	return comment, nil
}
