package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoTripRepository implements TripRepository
type MongoTripRepository struct {
	collection *mongo.Collection
}

// NewMongoTripRepository creates a new trip repository
func NewMongoTripRepository(db *mongo.Database) repository.TripRepository {
	collection := db.Collection("trips")

	// Index on nextCheckAt for the due-trip queries
	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"nextCheckAt": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoTripRepository{
		collection: collection,
	}
}

// FindByID finds a trip by id
func (r *MongoTripRepository) FindByID(ctx context.Context, id string) (*entity.Trip, error) {
	var trip entity.Trip
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

// FindNeverChecked returns trips that were never polled. A nil filter value
// matches documents where the field is null as well as missing.
func (r *MongoTripRepository) FindNeverChecked(ctx context.Context) ([]*entity.Trip, error) {
	filter := bson.M{"nextCheckAt": nil}
	return r.find(ctx, filter)
}

// FindDueBefore returns trips whose next check time is at or before t
func (r *MongoTripRepository) FindDueBefore(ctx context.Context, t time.Time) ([]*entity.Trip, error) {
	filter := bson.M{"nextCheckAt": bson.M{"$lte": t}}
	return r.find(ctx, filter)
}

// UpdateNextCheck writes back a trip's next check time
func (r *MongoTripRepository) UpdateNextCheck(ctx context.Context, id string, nextCheckAt time.Time) error {
	_, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"nextCheckAt": nextCheckAt,
			"updatedAt":   time.Now(),
		}},
	)
	return err
}

func (r *MongoTripRepository) find(ctx context.Context, filter bson.M) ([]*entity.Trip, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var trips []*entity.Trip
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}
