package utils

import "go.mongodb.org/mongo-driver/v2/bson"

// IsOwner is the single authorization predicate for mutating operations:
// the requesting identity must be the stored owner of the resource.
func IsOwner(identity string, owner bson.ObjectID) bool {
	return identity != "" && identity == owner.Hex()
}
