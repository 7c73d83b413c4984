package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"agendly/database"
	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	hoursColl  *mongo.Collection
	blocksColl *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.DB()
	repo := &MongoScheduleRepo{
		hoursColl:  db.Collection("operating_hours"),
		blocksColl: db.Collection("time_blocks"),
	}
	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("warning: schedule indexes: %v\n", err)
	}
	return repo
}

// GetOperatingHours retrieves all weekday entries for a provider.
func (repo *MongoScheduleRepo) GetOperatingHours(providerID string) ([]models.OperatingHours, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"provider_id": providerID}
	cursor, err := repo.hoursColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching operating hours for provider %s: %w", providerID, err)
	}
	defer cursor.Close(ctx)

	var hours []models.OperatingHours
	if err := cursor.All(ctx, &hours); err != nil {
		return nil, fmt.Errorf("error decoding operating hours: %w", err)
	}
	return hours, nil
}

// ReplaceOperatingHours swaps a provider's whole weekly schedule in one
// transaction. Partial-week states must never be observable, so the delete
// and the inserts commit together.
func (repo *MongoScheduleRepo) ReplaceOperatingHours(providerID string, hours []models.OperatingHours) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := database.WithTransaction(ctx, func(sc mongo.SessionContext) error {
		if _, err := repo.hoursColl.DeleteMany(sc, bson.M{"provider_id": providerID}); err != nil {
			return fmt.Errorf("delete existing hours failed: %w", err)
		}
		if len(hours) == 0 {
			return nil
		}
		docs := make([]interface{}, len(hours))
		for i := range hours {
			docs[i] = hours[i]
		}
		if _, err := repo.hoursColl.InsertMany(sc, docs); err != nil {
			return fmt.Errorf("insert new hours failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace operating hours transaction failed: %w", err)
	}

	return nil
}

// CreateTimeBlock inserts a new time block document.
func (repo *MongoScheduleRepo) CreateTimeBlock(block *models.TimeBlock) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := repo.blocksColl.InsertOne(ctx, block)
	if err != nil {
		return fmt.Errorf("error creating time block: %w", err)
	}
	return nil
}

// DeleteTimeBlock removes a time block owned by the given provider.
func (repo *MongoScheduleRepo) DeleteTimeBlock(providerID, blockID string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"id": blockID, "provider_id": providerID}
	res, err := repo.blocksColl.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("error removing time block %s: %w", blockID, err)
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// GetTimeBlocksInRange returns blocks overlapping [from, to) for a provider.
func (repo *MongoScheduleRepo) GetTimeBlocksInRange(providerID string, from, to time.Time) ([]models.TimeBlock, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Half-open overlap: block.start < to && block.end > from.
	filter := bson.M{
		"provider_id": providerID,
		"start":       bson.M{"$lt": to},
		"end":         bson.M{"$gt": from},
	}
	cursor, err := repo.blocksColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching time blocks: %w", err)
	}
	defer cursor.Close(ctx)

	var blocks []models.TimeBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding time blocks: %w", err)
	}
	return blocks, nil
}
