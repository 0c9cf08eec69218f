package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

type VideoRepository struct {
	videos *mongo.Collection
}

func NewVideoRepository(db *mongo.Database) *VideoRepository {
	return &VideoRepository{videos: db.Collection("videos")}
}

// List runs the published-video listing aggregation and paginates it.
func (r *VideoRepository) List(ctx context.Context, opts query.VideoListOptions, page query.PageRequest) (*query.Page[models.VideoListItem], error) {
	pipeline, err := query.VideoList(opts)
	if err != nil {
		return nil, err
	}

	result, err := query.Paginate[models.VideoListItem](ctx, r.videos, pipeline, page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list videos", err)
	}
	return result, nil
}

// Create persists a new video record. Media must already be uploaded.
func (r *VideoRepository) Create(ctx context.Context, video *models.Video) error {
	now := time.Now().UTC()
	video.ID = primitive.NewObjectID()
	video.CreatedAt = now
	video.UpdatedAt = now

	if _, err := r.videos.InsertOne(ctx, video); err != nil {
		return apperr.Wrap(apperr.Upstream, "failed to create video", err)
	}
	return nil
}

// GetByID loads the raw video record, used for ownership checks and
// for reading the stored media keys before deletes.
func (r *VideoRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	var video models.Video
	err := r.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}
	return &video, nil
}

// GetDetail runs the single-video aggregation with viewer-relative
// fields.
func (r *VideoRepository) GetDetail(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.VideoDetail, error) {
	cursor, err := r.videos.Aggregate(ctx, query.VideoDetail(id, viewer))
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to fetch video", err)
	}
	defer cursor.Close(ctx)

	var docs []models.VideoDetail
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to decode video", err)
	}
	if len(docs) == 0 {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	return &docs[0], nil
}

// guardOwner loads the video and enforces the ownership rule: absent
// video is NotFound, a non-owner viewer is PermissionDenied. Checked
// before any write; the write itself also filters on owner.
func (r *VideoRepository) guardOwner(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Video, error) {
	video, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(video.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this video")
	}
	return video, nil
}

// UpdateDetails updates title/description and optionally the thumbnail,
// returning the previous record so the caller can delete the replaced
// thumbnail object. The update filter repeats the owner so the check
// is serialized by the store.
func (r *VideoRepository) UpdateDetails(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, title, description string, thumbnail *models.MediaFile) (*models.Video, error) {
	previous, err := r.guardOwner(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"title":       title,
		"description": description,
		"updatedAt":   time.Now().UTC(),
	}
	if thumbnail != nil {
		set["thumbnail"] = thumbnail
	}

	ownerID, _ := viewer.ID()
	res, err := r.videos.UpdateOne(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to update video", err)
	}
	if res.MatchedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	return previous, nil
}

// Delete removes the video record and returns it so the caller can
// delete the stored media objects.
func (r *VideoRepository) Delete(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Video, error) {
	video, err := r.guardOwner(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	ownerID, _ := viewer.ID()
	res, err := r.videos.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to delete video", err)
	}
	if res.DeletedCount == 0 {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	return video, nil
}

// TogglePublish flips the publish flag and returns the updated record.
func (r *VideoRepository) TogglePublish(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Video, error) {
	video, err := r.guardOwner(ctx, id, viewer)
	if err != nil {
		return nil, err
	}

	ownerID, _ := viewer.ID()
	after := options.After
	var updated models.Video
	err = r.videos.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"isPublished": !video.IsPublished, "updatedAt": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to toggle publish status", err)
	}
	return &updated, nil
}

// IncrementViews bumps the view counter. Views only ever go up.
func (r *VideoRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.videos.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// Snapshot produces the denormalized copy of a video embedded into
// playlists.
func (r *VideoRepository) Snapshot(ctx context.Context, id primitive.ObjectID) (*models.PlaylistVideo, error) {
	cursor, err := r.videos.Aggregate(ctx, query.VideoSnapshot(id))
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to fetch video snapshot", err)
	}
	defer cursor.Close(ctx)

	var docs []models.PlaylistVideo
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to decode video snapshot", err)
	}
	if len(docs) == 0 {
		return nil, apperr.New(apperr.NotFound, "video not found")
	}
	return &docs[0], nil
}

// ChannelStats sums the owner's video totals.
func (r *VideoRepository) ChannelStats(ctx context.Context, ownerID primitive.ObjectID) (*models.ChannelStats, error) {
	cursor, err := r.videos.Aggregate(ctx, query.ChannelVideoStats(ownerID))
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to fetch channel stats", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		TotalLikes  int64 `bson:"totalLikes"`
		TotalViews  int64 `bson:"totalViews"`
		TotalVideos int64 `bson:"totalVideos"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to decode channel stats", err)
	}

	stats := &models.ChannelStats{}
	if len(rows) > 0 {
		stats.TotalLikes = rows[0].TotalLikes
		stats.TotalViews = rows[0].TotalViews
		stats.TotalVideos = rows[0].TotalVideos
	}
	return stats, nil
}

// ChannelVideos lists the owner's videos, unpublished included.
func (r *VideoRepository) ChannelVideos(ctx context.Context, ownerID primitive.ObjectID, page query.PageRequest) (*query.Page[bson.M], error) {
	result, err := query.Paginate[bson.M](ctx, r.videos, query.ChannelVideos(ownerID), page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list channel videos", err)
	}
	return result, nil
}
