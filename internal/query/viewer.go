package query

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Viewer carries the identity of the caller into pipeline construction.
// It is passed explicitly through every layer; there is no ambient
// request-scoped state.
type Viewer struct {
	id            primitive.ObjectID
	authenticated bool
}

// NewViewer returns an authenticated viewer.
func NewViewer(id primitive.ObjectID) Viewer {
	return Viewer{id: id, authenticated: true}
}

// Anonymous returns an unauthenticated viewer. Viewer-relative fields
// computed for it evaluate to false.
func Anonymous() Viewer {
	return Viewer{}
}

// ID returns the viewer id and whether the viewer is authenticated.
func (v Viewer) ID() (primitive.ObjectID, bool) {
	return v.id, v.authenticated
}

// Owns reports whether the viewer is the recorded owner.
func (v Viewer) Owns(owner primitive.ObjectID) bool {
	return v.authenticated && v.id == owner
}

// MemberOf builds the computed-field expression testing whether the
// viewer id appears in the joined array at arrayPath (e.g.
// "$likes.likedBy"). Anonymous viewers get a literal false.
func (v Viewer) MemberOf(arrayPath string) interface{} {
	if !v.authenticated {
		return false
	}
	return bson.M{
		"$cond": bson.M{
			"if":   bson.M{"$in": bson.A{v.id, arrayPath}},
			"then": true,
			"else": false,
		},
	}
}
