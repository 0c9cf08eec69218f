package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// isDuplicateKey reports whether err is a unique-index violation. The
// unique indexes are the authoritative enforcement of the one-like and
// one-subscription invariants; read-then-act toggles race, and the
// losing insert surfaces here.
func isDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
