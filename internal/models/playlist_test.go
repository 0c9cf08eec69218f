package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPlaylistContains(t *testing.T) {
	inside := primitive.NewObjectID()
	outside := primitive.NewObjectID()

	p := &Playlist{
		Videos: []PlaylistVideo{
			{ID: primitive.NewObjectID()},
			{ID: inside},
		},
	}

	if !p.Contains(inside) {
		t.Error("Contains() = false for an embedded video")
	}
	if p.Contains(outside) {
		t.Error("Contains() = true for a video not in the playlist")
	}

	empty := &Playlist{}
	if empty.Contains(inside) {
		t.Error("Contains() = true on an empty playlist")
	}
}
