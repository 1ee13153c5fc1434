package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"playtube-backend/models"
)

// UserStore wraps the users collection for the lookups the auth flow needs.
type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(col *mongo.Collection) *UserStore {
	return &UserStore{col: col}
}

// FindUserByID loads a user with both secret fields stripped.
func (s *UserStore) FindUserByID(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.findProjected(ctx, id, bson.M{"password": 0, "refreshToken": 0})
}

// FindUserWithRefreshToken keeps refreshToken so the caller can byte-match
// it against an incoming token.
func (s *UserStore) FindUserWithRefreshToken(ctx context.Context, id bson.ObjectID) (*models.User, error) {
	return s.findProjected(ctx, id, bson.M{"password": 0})
}

func (s *UserStore) SaveRefreshToken(ctx context.Context, userID bson.ObjectID, token string) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{
		"$set": bson.M{
			"refreshToken": token,
			"updatedAt":    time.Now().UTC(),
		},
	})
	return err
}

func (s *UserStore) ClearRefreshToken(ctx context.Context, userID bson.ObjectID) error {
	_, err := s.col.UpdateByID(ctx, userID, bson.M{
		"$unset": bson.M{"refreshToken": 1},
		"$set":   bson.M{"updatedAt": time.Now().UTC()},
	})
	return err
}

func (s *UserStore) findProjected(ctx context.Context, id bson.ObjectID, projection bson.M) (*models.User, error) {
	var user models.User
	opts := options.FindOne().SetProjection(projection)
	if err := s.col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}
