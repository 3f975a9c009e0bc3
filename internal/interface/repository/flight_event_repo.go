package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoFlightEventRepository implements FlightEventRepository
type MongoFlightEventRepository struct {
	collection *mongo.Collection
}

// NewMongoFlightEventRepository creates a new flight event repository
func NewMongoFlightEventRepository(db *mongo.Database) repository.FlightEventRepository {
	collection := db.Collection("flight_events")

	// Compound index serving the latest-event-by-trip query
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.D{{Key: "tripId", Value: 1}, {Key: "createdAt", Value: -1}},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoFlightEventRepository{
		collection: collection,
	}
}

// Append inserts a new event. Events are never mutated or deleted.
func (r *MongoFlightEventRepository) Append(ctx context.Context, event *entity.FlightEvent) error {
	if event.ID == "" {
		event.ID = primitive.NewObjectID().Hex()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, event)
	return err
}

// LatestByTripID returns the most recent event for a trip, or nil if the
// trip has no observations yet
func (r *MongoFlightEventRepository) LatestByTripID(ctx context.Context, tripID string) (*entity.FlightEvent, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var event entity.FlightEvent
	err := r.collection.FindOne(ctx, bson.M{"tripId": tripID}, opts).Decode(&event)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}
