package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type User struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Username   string        `bson:"username" json:"username"`
	Email      string        `bson:"email" json:"email"`
	Fullname   string        `bson:"fullname" json:"fullname"`
	Avatar     string        `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CoverImage string        `bson:"coverImage,omitempty" json:"coverImage,omitempty"`
	Password   string        `bson:"password,omitempty" json:"-"` // never expose
	// RefreshToken holds the single active refresh token for the user.
	// Issuing a new pair overwrites it, so only one session is valid at a time.
	RefreshToken string          `bson:"refreshToken,omitempty" json:"-"`
	WatchHistory []bson.ObjectID `bson:"watchHistory,omitempty" json:"watchHistory,omitempty"`
	CreatedAt    time.Time       `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time       `bson:"updatedAt" json:"updatedAt"`
}
