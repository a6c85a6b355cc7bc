package storage

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/Ananth-NQI/wander-backend/internal/models"
)

// MongoStore keeps bookings in a single MongoDB collection
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore wraps the collection and makes sure the email/date index exists
func NewMongoStore(ctx context.Context, collection *mongo.Collection) (*MongoStore, error) {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return nil, storeErr("create index", err)
	}
	return &MongoStore{collection: collection}, nil
}

func (m *MongoStore) CreateBooking(ctx context.Context, booking *models.Booking) (*models.Booking, error) {
	booking.SetDefaults()
	if _, err := m.collection.InsertOne(ctx, booking); err != nil {
		return nil, storeErr("create booking", err)
	}
	return booking, nil
}

func (m *MongoStore) GetBookingsByEmail(ctx context.Context, email string) ([]*models.Booking, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.D{{Key: "email", Value: email}}, opts)
	if err != nil {
		return nil, storeErr("get bookings by email", err)
	}

	bookings := make([]*models.Booking, 0)
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, storeErr("get bookings by email", err)
	}
	return bookings, nil
}

func (m *MongoStore) Ping(ctx context.Context) error {
	if err := m.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return storeErr("ping", err)
	}
	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.collection.Database().Client().Disconnect(ctx)
}
