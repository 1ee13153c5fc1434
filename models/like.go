package models

import "go.mongodb.org/mongo-driver/v2/bson"

// Like is a single document per liked target. Users holds everyone who
// currently likes the target; toggling adds or removes a member. The
// document is kept around even when Users empties.
type Like struct {
	ID      bson.ObjectID   `bson:"_id,omitempty" json:"id"`
	Users   []bson.ObjectID `bson:"users" json:"users"`
	Video   *bson.ObjectID  `bson:"video,omitempty" json:"video,omitempty"`
	Comment *bson.ObjectID  `bson:"comment,omitempty" json:"comment,omitempty"`
}
