package creditsRepo

import (
	"context"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCreditsRepo implements CreditsRepository using MongoDB.
type MongoCreditsRepo struct {
	coll *mongo.Collection
}

// NewMongoCreditsRepo constructs a new instance of MongoCreditsRepo.
func NewMongoCreditsRepo() CreditsRepository {
	repo := &MongoCreditsRepo{
		coll: database.DB().Collection("package_balances"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: credits indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new package balance document.
func (repo *MongoCreditsRepo) Create(balance *models.PackageBalance) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, balance)
	if err != nil {
		return fmt.Errorf("error creating package balance: %w", err)
	}
	return nil
}

// GetByID retrieves a package balance by ID.
func (repo *MongoCreditsRepo) GetByID(id string) (*models.PackageBalance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var balance models.PackageBalance
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&balance); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching package balance %s: %w", id, err)
	}
	return &balance, nil
}

// RedeemEarliestExpiring performs the FIFO-by-expiry redemption as a single
// conditional find-and-modify. The remaining_credits > 0 filter is what
// keeps the counter from ever going negative under concurrency.
func (repo *MongoCreditsRepo) RedeemEarliestExpiring(ctx context.Context, consumerID, providerID, serviceID string, now time.Time) (*models.PackageBalance, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"consumer_id":       consumerID,
		"provider_id":       providerID,
		"service_id":        serviceID,
		"remaining_credits": bson.M{"$gt": 0},
		"expires_at":        bson.M{"$gt": now},
	}
	update := bson.M{"$inc": bson.M{"remaining_credits": -1}}
	opts := options.FindOneAndUpdate().
		SetSort(bson.D{{Key: "expires_at", Value: 1}}).
		SetReturnDocument(options.After)

	var balance models.PackageBalance
	err := repo.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&balance)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNoEligibleBalance
		}
		return nil, fmt.Errorf("error redeeming package credit: %w", err)
	}
	return &balance, nil
}

// Refund restores one credit on the referenced balance. Deliberately no
// expiry filter: credits come back even on an expired balance.
func (repo *MongoCreditsRepo) Refund(ctx context.Context, balanceID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$inc": bson.M{"remaining_credits": 1}}
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": balanceID}, update)
	if err != nil {
		return fmt.Errorf("error refunding package credit to %s: %w", balanceID, err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ListByConsumer returns all balances a consumer holds.
func (repo *MongoCreditsRepo) ListByConsumer(consumerID string) ([]models.PackageBalance, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "expires_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"consumer_id": consumerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing package balances: %w", err)
	}
	defer cursor.Close(ctx)

	var balances []models.PackageBalance
	if err := cursor.All(ctx, &balances); err != nil {
		return nil, fmt.Errorf("error decoding package balances: %w", err)
	}
	return balances, nil
}

// DeleteExhaustedExpired removes spent balances that expired before cutoff.
func (repo *MongoCreditsRepo) DeleteExhaustedExpired(before time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{
		"remaining_credits": 0,
		"expires_at":        bson.M{"$lt": before},
	}
	res, err := repo.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("error sweeping expired balances: %w", err)
	}
	return res.DeletedCount, nil
}
