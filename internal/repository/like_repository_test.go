package repository

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/viewtube/backend/internal/models"
)

func TestLikeToggle_DuplicateInsertReportsLiked(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	// Two concurrent togglers can both observe the absent state; the
	// unique index rejects the losing insert. That loser asked for the
	// liked state and got it, so the toggle reports success.
	mt.Run("losing insert is already in desired state", func(mt *mtest.T) {
		repo := NewLikeRepository(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "viewtube.likes", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error",
			}),
		)

		liked, err := repo.Toggle(context.Background(), models.LikeTargetVideo, primitive.NewObjectID(), primitive.NewObjectID())
		if err != nil {
			mt.Fatalf("Toggle() error = %v, want success on duplicate insert", err)
		}
		if !liked {
			mt.Error("Toggle() = false, want true when the pair is already liked")
		}
	})

	mt.Run("other write failures still surface", func(mt *mtest.T) {
		repo := NewLikeRepository(mt.DB)

		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "viewtube.likes", mtest.FirstBatch),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    8000,
				Message: "not a duplicate key",
			}),
		)

		_, err := repo.Toggle(context.Background(), models.LikeTargetVideo, primitive.NewObjectID(), primitive.NewObjectID())
		if err == nil {
			mt.Fatal("Toggle() should propagate non-duplicate write errors")
		}
	})
}

func TestLikeToggle_ExistingLikeIsRemoved(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("present flips to absent", func(mt *mtest.T) {
		repo := NewLikeRepository(mt.DB)

		videoID := primitive.NewObjectID()
		likerID := primitive.NewObjectID()
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, "viewtube.likes", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "video", Value: videoID},
				{Key: "likedBy", Value: likerID},
			}),
			mtest.CreateSuccessResponse(),
		)

		liked, err := repo.Toggle(context.Background(), models.LikeTargetVideo, videoID, likerID)
		if err != nil {
			mt.Fatalf("Toggle() error = %v", err)
		}
		if liked {
			mt.Error("Toggle() = true, want false after removing an existing like")
		}
	})
}
