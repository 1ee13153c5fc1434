package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestIsOwner(t *testing.T) {
	owner := bson.NewObjectID()
	other := bson.NewObjectID()

	assert.True(t, IsOwner(owner.Hex(), owner))
	assert.False(t, IsOwner(other.Hex(), owner))
	assert.False(t, IsOwner("", owner))
	assert.False(t, IsOwner("not-a-hex-id", owner))
}
