package database

import (
	"context"
	"log"
	"sync"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"playtube-backend/config"
)

var (
	db   *mongo.Database
	once sync.Once
)

// Connect dials MongoDB once and keeps the database handle for
// OpenCollection. Panics on failure, the process is useless without it.
func Connect(cfg *config.Config) *mongo.Database {
	once.Do(func() {
		serverAPI := options.ServerAPI(options.ServerAPIVersion1)
		opts := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(serverAPI)

		client, err := mongo.Connect(opts)
		if err != nil {
			panic(err)
		}
		if err := client.Ping(context.Background(), readpref.Primary()); err != nil {
			panic(err)
		}
		log.Println("Connected to MongoDB")

		db = client.Database(cfg.DatabaseName)
	})
	return db
}

func OpenCollection(collectionName string) *mongo.Collection {
	if db == nil {
		panic("database: Connect must be called before OpenCollection")
	}
	return db.Collection(collectionName)
}
