package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	catalogRepo "agendly/database/repository/catalog"
	"agendly/models"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

var (
	// ErrServiceNotFound means the catalog has no service with that id.
	ErrServiceNotFound = errors.New("service not found")
	// ErrCatalogUnavailable means the catalog store could not be reached.
	ErrCatalogUnavailable = errors.New("catalog unavailable")
)

const serviceCacheTTL = 5 * time.Minute

// CatalogService resolves a service's duration and price snapshot at
// booking time. The catalog itself is managed upstream; this is a read-only
// collaborator that must be treated as possibly slow or down.
type CatalogService interface {
	GetService(serviceID string) (*models.Service, error)
}

// DefaultCatalogService is a Mongo-backed implementation with a short Redis
// cache in front.
type DefaultCatalogService struct {
	Repo  catalogRepo.CatalogRepository
	Cache *redis.Client // optional
}

func (svc *DefaultCatalogService) GetService(serviceID string) (*models.Service, error) {
	cacheKey := "service:" + serviceID

	if svc.Cache != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		data, err := svc.Cache.Get(ctx, cacheKey).Result()
		cancel()
		if err == nil {
			var cached models.Service
			if err := json.Unmarshal([]byte(data), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	service, err := svc.Repo.GetServiceByID(serviceID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrServiceNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}

	if svc.Cache != nil {
		if data, err := json.Marshal(service); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			if err := svc.Cache.Set(ctx, cacheKey, data, serviceCacheTTL).Err(); err != nil {
				utils.GetLogger().Warn("failed to cache service", zap.String("serviceId", serviceID), zap.Error(err))
			}
			cancel()
		}
	}

	return service, nil
}
