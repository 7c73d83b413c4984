package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Overlap queries scan a provider's active window.
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}}},
		// History pages, newest first.
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "start", Value: -1}}},
		{Keys: bson.D{{Key: "consumer_id", Value: 1}, {Key: "start", Value: -1}}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
