package repository

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/viewtube/backend/internal/apperr"
	"github.com/viewtube/backend/internal/models"
	"github.com/viewtube/backend/internal/query"
)

// AddVideo's conditional push can miss for two reasons: the playlist
// vanished, or a concurrent add already embedded the video. The re-read
// must tell them apart.
func TestPlaylistAddVideo_ConcurrentAddYieldsConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("video embedded by a concurrent add", func(mt *mtest.T) {
		repo := NewPlaylistRepository(mt.DB)

		playlistID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		videoID := primitive.NewObjectID()

		before := bson.D{
			{Key: "_id", Value: playlistID},
			{Key: "name", Value: "mix"},
			{Key: "owner", Value: ownerID},
			{Key: "videos", Value: bson.A{}},
		}
		after := bson.D{
			{Key: "_id", Value: playlistID},
			{Key: "name", Value: "mix"},
			{Key: "owner", Value: ownerID},
			{Key: "videos", Value: bson.A{bson.D{{Key: "_id", Value: videoID}}}},
		}

		mt.AddMockResponses(
			// ownership guard read: video not embedded yet
			mtest.CreateCursorResponse(0, "viewtube.playlists", mtest.FirstBatch, before),
			// conditional push matches nothing
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			// re-read: a concurrent add got there first
			mtest.CreateCursorResponse(1, "viewtube.playlists", mtest.FirstBatch, after),
		)

		snapshot := &models.PlaylistVideo{ID: videoID, Title: "clip"}
		_, err := repo.AddVideo(context.Background(), playlistID, query.NewViewer(ownerID), snapshot)
		if err == nil {
			mt.Fatal("AddVideo() should fail when the video is already embedded")
		}
		if !apperr.IsKind(err, apperr.Conflict) {
			mt.Errorf("AddVideo() kind = %v, want Conflict", apperr.KindOf(err))
		}
	})

	mt.Run("playlist deleted between read and push", func(mt *mtest.T) {
		repo := NewPlaylistRepository(mt.DB)

		playlistID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		videoID := primitive.NewObjectID()

		before := bson.D{
			{Key: "_id", Value: playlistID},
			{Key: "name", Value: "mix"},
			{Key: "owner", Value: ownerID},
			{Key: "videos", Value: bson.A{}},
		}

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "viewtube.playlists", mtest.FirstBatch, before),
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			// re-read finds nothing
			mtest.CreateCursorResponse(0, "viewtube.playlists", mtest.FirstBatch),
		)

		snapshot := &models.PlaylistVideo{ID: videoID, Title: "clip"}
		_, err := repo.AddVideo(context.Background(), playlistID, query.NewViewer(ownerID), snapshot)
		if !apperr.IsKind(err, apperr.NotFound) {
			mt.Errorf("AddVideo() kind = %v, want NotFound", apperr.KindOf(err))
		}
	})
}

func TestPlaylistAddVideo_EmbeddedVideoIsConflict(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate caught on the guard read", func(mt *mtest.T) {
		repo := NewPlaylistRepository(mt.DB)

		playlistID := primitive.NewObjectID()
		ownerID := primitive.NewObjectID()
		videoID := primitive.NewObjectID()

		mt.AddMockResponses(
			mtest.CreateCursorResponse(1, "viewtube.playlists", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: playlistID},
				{Key: "name", Value: "mix"},
				{Key: "owner", Value: ownerID},
				{Key: "videos", Value: bson.A{bson.D{{Key: "_id", Value: videoID}}}},
			}),
		)

		snapshot := &models.PlaylistVideo{ID: videoID}
		_, err := repo.AddVideo(context.Background(), playlistID, query.NewViewer(ownerID), snapshot)
		if !apperr.IsKind(err, apperr.Conflict) {
			mt.Errorf("AddVideo() kind = %v, want Conflict", apperr.KindOf(err))
		}
	})
}
