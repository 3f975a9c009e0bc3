package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoMessageLogRepository implements MessageLogRepository
type MongoMessageLogRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageLogRepository creates a new message log repository
func NewMongoMessageLogRepository(db *mongo.Database) repository.MessageLogRepository {
	collection := db.Collection("message_logs")

	ctx := context.Background()
	indexModel := mongo.IndexModel{
		Keys: bson.M{"tripId": 1},
	}
	collection.Indexes().CreateOne(ctx, indexModel)

	return &MongoMessageLogRepository{
		collection: collection,
	}
}

// Insert records one delivery attempt
func (r *MongoMessageLogRepository) Insert(ctx context.Context, entry *entity.MessageLogEntry) error {
	if entry.ID == "" {
		entry.ID = primitive.NewObjectID().Hex()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := r.collection.InsertOne(ctx, entry)
	return err
}
