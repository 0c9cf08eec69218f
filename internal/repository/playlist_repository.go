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
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

type PlaylistRepository struct {
	playlists *mongo.Collection
}

func NewPlaylistRepository(db *mongo.Database) *PlaylistRepository {
	return &PlaylistRepository{playlists: db.Collection("playlists")}
}

// Create adds an empty playlist.
func (r *PlaylistRepository) Create(ctx context.Context, ownerID primitive.ObjectID, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "name cannot be empty")
	}

	now := time.Now().UTC()
	playlist := &models.Playlist{
		ID:          primitive.NewObjectID(),
		Name:        name,
		Description: description,
		Videos:      []models.PlaylistVideo{},
		Owner:       ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.playlists.InsertOne(ctx, playlist); err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to create playlist", err)
	}
	return playlist, nil
}

// ListByUser returns a user's playlists, newest first.
func (r *PlaylistRepository) ListByUser(ctx context.Context, ownerID primitive.ObjectID, page query.PageRequest) (*query.Page[models.Playlist], error) {
	pipeline := query.New().
		Match(bson.M{"owner": ownerID}).
		Sort(bson.D{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}}}).
		Pipeline()

	result, err := query.Paginate[models.Playlist](ctx, r.playlists, pipeline, page)
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to list playlists", err)
	}
	return result, nil
}

func (r *PlaylistRepository) getByID(ctx context.Context, id primitive.ObjectID) (*models.Playlist, error) {
	var playlist models.Playlist
	err := r.playlists.FindOne(ctx, bson.M{"_id": id}).Decode(&playlist)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}
	return &playlist, nil
}

// GetByID loads a playlist. Playlists are private to their owner, so a
// non-owner viewer is refused rather than served a read-only copy.
func (r *PlaylistRepository) GetByID(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Playlist, error) {
	playlist, err := r.guardOwner(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (r *PlaylistRepository) guardOwner(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) (*models.Playlist, error) {
	playlist, err := r.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !viewer.Owns(playlist.Owner) {
		return nil, apperr.New(apperr.PermissionDenied, "you are not the owner of this playlist")
	}
	return playlist, nil
}

// Update rewrites name and description.
func (r *PlaylistRepository) Update(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, name, description string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.New(apperr.InvalidArgument, "name cannot be empty")
	}

	if _, err := r.guardOwner(ctx, id, viewer); err != nil {
		return nil, err
	}

	ownerID, _ := viewer.ID()
	after := options.After
	var updated models.Playlist
	err := r.playlists.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{"$set": bson.M{"name": name, "description": description, "updatedAt": time.Now().UTC()}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to update playlist", err)
	}
	return &updated, nil
}

// Delete removes a playlist.
func (r *PlaylistRepository) Delete(ctx context.Context, id primitive.ObjectID, viewer query.Viewer) error {
	if _, err := r.guardOwner(ctx, id, viewer); err != nil {
		return err
	}

	ownerID, _ := viewer.ID()
	res, err := r.playlists.DeleteOne(ctx, bson.M{"_id": id, "owner": ownerID})
	if err != nil {
		return apperr.Wrap(apperr.Upstream, "failed to delete playlist", err)
	}
	if res.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "playlist not found")
	}
	return nil
}

// AddVideo embeds a snapshot of the video into the playlist. The push
// filter repeats the membership test so concurrent adds cannot embed
// the same video twice.
func (r *PlaylistRepository) AddVideo(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, snapshot *models.PlaylistVideo) (*models.Playlist, error) {
	playlist, err := r.guardOwner(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if playlist.Contains(snapshot.ID) {
		return nil, apperr.New(apperr.Conflict, "video already exists in this playlist")
	}

	ownerID, _ := viewer.ID()
	after := options.After
	var updated models.Playlist
	err = r.playlists.FindOneAndUpdate(ctx,
		bson.M{
			"_id":        id,
			"owner":      ownerID,
			"videos._id": bson.M{"$ne": snapshot.ID},
		},
		bson.M{
			"$push": bson.M{"videos": snapshot},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Either the playlist vanished or a concurrent add got there
		// first; re-read to tell the two apart.
		current, rerr := r.getByID(ctx, id)
		if rerr != nil {
			return nil, rerr
		}
		if current.Contains(snapshot.ID) {
			return nil, apperr.New(apperr.Conflict, "video already exists in this playlist")
		}
		return nil, apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to add video to playlist", err)
	}
	return &updated, nil
}

// RemoveVideo pulls a video out of the playlist. Removing a video that
// is not in the playlist is a no-op success.
func (r *PlaylistRepository) RemoveVideo(ctx context.Context, id primitive.ObjectID, viewer query.Viewer, videoID primitive.ObjectID) (*models.Playlist, error) {
	if _, err := r.guardOwner(ctx, id, viewer); err != nil {
		return nil, err
	}

	ownerID, _ := viewer.ID()
	after := options.After
	var updated models.Playlist
	err := r.playlists.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "owner": ownerID},
		bson.M{
			"$pull": bson.M{"videos": bson.M{"_id": videoID}},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&updated)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.New(apperr.NotFound, "playlist not found")
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Upstream, "failed to remove video from playlist", err)
	}
	return &updated, nil
}
