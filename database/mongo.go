package database

import (
	"context"
	"log"
	"net/url"
	"strings"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// ConnectMongo connects to MongoDB and returns the bookings collection.
// The database name comes from the URI path, falling back to defaultDB.
func ConnectMongo(ctx context.Context, uri, defaultDB, collection string) (*mongo.Collection, error) {
	log.Println("📦 Connecting to MongoDB...")
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Println("✅ Connected to MongoDB")

	return client.Database(mongoDatabaseName(uri, defaultDB)).Collection(collection), nil
}

func mongoDatabaseName(uri, defaultDB string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return defaultDB
	}
	if name := strings.Trim(u.Path, "/"); name != "" {
		return name
	}
	return defaultDB
}
