package query

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCommentList_StageOrder(t *testing.T) {
	p := CommentList(primitive.NewObjectID(), Anonymous())

	want := []string{"$match", "$lookup", "$lookup", "$addFields", "$sort", "$project"}
	got := stageKeys(p)
	if len(got) != len(want) {
		t.Fatalf("stages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCommentList_FiltersByVideo(t *testing.T) {
	videoID := primitive.NewObjectID()
	p := CommentList(videoID, Anonymous())

	if got := matchValue(t, p, 0)["video"]; got != videoID {
		t.Errorf("match video = %v, want %v", got, videoID)
	}
}

func TestCommentList_ViewerRelativeIsLiked(t *testing.T) {
	videoID := primitive.NewObjectID()

	anon := CommentList(videoID, Anonymous())
	var addFields bson.M
	for i := range anon {
		if v, ok := anon[i].Map()["$addFields"].(bson.M); ok {
			addFields = v
		}
	}
	if addFields == nil {
		t.Fatal("comment pipeline has no computed-field stage")
	}
	if addFields["isLiked"] != false {
		t.Errorf("anonymous isLiked = %v, want literal false", addFields["isLiked"])
	}

	authed := CommentList(videoID, NewViewer(primitive.NewObjectID()))
	for i := range authed {
		if v, ok := authed[i].Map()["$addFields"].(bson.M); ok {
			if _, isCond := v["isLiked"].(bson.M); !isCond {
				t.Errorf("authenticated isLiked = %v, want a $cond expression", v["isLiked"])
			}
		}
	}
}

func TestChannelSubscribers_ExcludesRowID(t *testing.T) {
	p := ChannelSubscribers(primitive.NewObjectID())

	last := p[len(p)-1].Map()
	proj, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatal("last stage should be the projection")
	}
	if got := proj["_id"]; got != 0 {
		t.Errorf("projection _id = %v, want 0", got)
	}
	if _, ok := proj["subscriber"]; !ok {
		t.Error("projection should include the subscriber document")
	}
}
