package query

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/viewtube/backend/internal/apperr"
)

func TestSortStage_Default(t *testing.T) {
	got, err := SortStage("", "", VideoSortFields)
	if err != nil {
		t.Fatalf("SortStage() error = %v", err)
	}

	want := bson.D{{Key: "$sort", Value: bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: 1},
	}}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SortStage() = %v, want %v", got, want)
	}
}

func TestSortStage_Override(t *testing.T) {
	tests := []struct {
		name     string
		sortBy   string
		sortType string
		wantDir  int
	}{
		{"Ascending", "views", "asc", 1},
		{"Descending", "views", "desc", -1},
		{"Unknown direction defaults to descending", "views", "sideways", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SortStage(tt.sortBy, tt.sortType, VideoSortFields)
			if err != nil {
				t.Fatalf("SortStage() error = %v", err)
			}

			keys := got[0].Value.(bson.D)
			if keys[0].Key != "views" || keys[0].Value != tt.wantDir {
				t.Errorf("primary sort = %v, want views %d", keys[0], tt.wantDir)
			}
			if keys[1].Key != "_id" || keys[1].Value != 1 {
				t.Errorf("tie-break = %v, want _id ascending", keys[1])
			}
		})
	}
}

func TestSortStage_RejectsUnlistedField(t *testing.T) {
	_, err := SortStage("passwordHash", "asc", VideoSortFields)
	if err == nil {
		t.Fatal("expected error for field outside allow-list")
	}
	if apperr.KindOf(err) != apperr.InvalidArgument {
		t.Errorf("kind = %v, want InvalidArgument", apperr.KindOf(err))
	}
}

func TestSortStage_NoDoubleTieBreakOnID(t *testing.T) {
	got, err := SortStage("_id", "asc", []string{"_id"})
	if err != nil {
		t.Fatalf("SortStage() error = %v", err)
	}
	keys := got[0].Value.(bson.D)
	if len(keys) != 1 {
		t.Errorf("expected a single sort key when sorting by _id, got %v", keys)
	}
}
