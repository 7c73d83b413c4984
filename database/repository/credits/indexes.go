package creditsRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates indexes for frequently used fields in queries.
func (repo *MongoCreditsRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		// Redemption scans the tuple sorted by expiry.
		{Keys: bson.D{
			{Key: "consumer_id", Value: 1},
			{Key: "provider_id", Value: 1},
			{Key: "service_id", Value: 1},
			{Key: "expires_at", Value: 1},
		}},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create package_balances indexes: %w", err)
	}
	return nil
}
