package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/viewtube/backend/internal/apperr"
)

func TestParseID(t *testing.T) {
	want := primitive.NewObjectID()

	got, err := ParseID(want.Hex())
	if err != nil {
		t.Fatalf("ParseID(%q) error: %v", want.Hex(), err)
	}
	if got != want {
		t.Errorf("ParseID() = %s, want %s", got.Hex(), want.Hex())
	}
}

func TestParseIDInvalid(t *testing.T) {
	cases := []string{"", "not-hex", "123", "zzzzzzzzzzzzzzzzzzzzzzzz"}
	for _, in := range cases {
		_, err := ParseID(in)
		if err == nil {
			t.Errorf("ParseID(%q) expected error", in)
			continue
		}
		if !apperr.IsKind(err, apperr.InvalidArgument) {
			t.Errorf("ParseID(%q) kind = %v, want InvalidArgument", in, apperr.KindOf(err))
		}
	}
}
