package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoScheduleRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hoursIdx := []mongo.IndexModel{
		// One entry per provider and weekday.
		{
			Keys:    bson.D{{Key: "provider_id", Value: 1}, {Key: "weekday", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := repo.hoursColl.Indexes().CreateMany(ctx, hoursIdx); err != nil {
		return fmt.Errorf("failed to create operating_hours indexes: %w", err)
	}

	blockIdx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "start", Value: 1}}},
	}
	if _, err := repo.blocksColl.Indexes().CreateMany(ctx, blockIdx); err != nil {
		return fmt.Errorf("failed to create time_blocks indexes: %w", err)
	}
	return nil
}
