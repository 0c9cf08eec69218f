package query

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// stageKeys lists the operator of each stage in order.
func stageKeys(p mongo.Pipeline) []string {
	keys := make([]string, 0, len(p))
	for _, stage := range p {
		keys = append(keys, stage[0].Key)
	}
	return keys
}

func matchValue(t *testing.T, p mongo.Pipeline, i int) bson.M {
	t.Helper()
	v, ok := p[i].Map()["$match"].(bson.M)
	if !ok {
		t.Fatalf("stage %d is not a $match: %v", i, p[i])
	}
	return v
}

func TestVideoList_SearchWinsOverOwnerFilter(t *testing.T) {
	owner := primitive.NewObjectID()
	p, err := VideoList(VideoListOptions{Search: "lofi beats", OwnerID: &owner})
	if err != nil {
		t.Fatalf("VideoList() error = %v", err)
	}

	first := matchValue(t, p, 0)
	if _, ok := first["$text"]; !ok {
		t.Errorf("first stage should be the text search, got %v", first)
	}
	for i := range p {
		m, ok := p[i].Map()["$match"].(bson.M)
		if !ok {
			continue
		}
		if _, ok := m["owner"]; ok {
			t.Error("owner filter must be dropped when a search term is supplied")
		}
	}
}

func TestVideoList_OwnerFilterWithoutSearch(t *testing.T) {
	owner := primitive.NewObjectID()
	p, err := VideoList(VideoListOptions{OwnerID: &owner})
	if err != nil {
		t.Fatalf("VideoList() error = %v", err)
	}

	if got := matchValue(t, p, 0)["owner"]; got != owner {
		t.Errorf("first match owner = %v, want %v", got, owner)
	}
}

func TestVideoList_AlwaysRestrictsToPublished(t *testing.T) {
	p, err := VideoList(VideoListOptions{})
	if err != nil {
		t.Fatalf("VideoList() error = %v", err)
	}

	found := false
	for i := range p {
		m, ok := p[i].Map()["$match"].(bson.M)
		if ok {
			if v, has := m["isPublished"]; has && v == true {
				found = true
			}
		}
	}
	if !found {
		t.Error("listing must filter on isPublished")
	}
}

func TestVideoList_StageOrder(t *testing.T) {
	p, err := VideoList(VideoListOptions{})
	if err != nil {
		t.Fatalf("VideoList() error = %v", err)
	}

	want := []string{"$match", "$sort", "$lookup", "$unwind", "$project"}
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

func TestVideoList_RejectsUnlistedSortField(t *testing.T) {
	_, err := VideoList(VideoListOptions{SortBy: "owner"})
	if err == nil {
		t.Fatal("expected error for sort field outside allow-list")
	}
}

func TestVideoDetail_ViewerRelativeFields(t *testing.T) {
	videoID := primitive.NewObjectID()

	anon := VideoDetail(videoID, Anonymous())
	var addFields bson.M
	for i := range anon {
		if v, ok := anon[i].Map()["$addFields"].(bson.M); ok {
			addFields = v
		}
	}
	if addFields == nil {
		t.Fatal("detail pipeline has no computed-field stage")
	}
	if addFields["isLiked"] != false {
		t.Errorf("anonymous isLiked = %v, want literal false", addFields["isLiked"])
	}

	authed := VideoDetail(videoID, NewViewer(primitive.NewObjectID()))
	for i := range authed {
		if v, ok := authed[i].Map()["$addFields"].(bson.M); ok {
			if _, isCond := v["isLiked"].(bson.M); !isCond {
				t.Errorf("authenticated isLiked = %v, want a $cond expression", v["isLiked"])
			}
		}
	}
}

func TestVideoDetail_ProjectionExcludesStorageKeys(t *testing.T) {
	p := VideoDetail(primitive.NewObjectID(), Anonymous())

	last := p[len(p)-1].Map()
	proj, ok := last["$project"].(bson.M)
	if !ok {
		t.Fatal("last stage should be the projection")
	}
	if _, ok := proj["videoFile.url"]; !ok {
		t.Error("projection should include videoFile.url")
	}
	if _, ok := proj["videoFile"]; ok {
		t.Error("projection must not expose the full videoFile document")
	}
}
