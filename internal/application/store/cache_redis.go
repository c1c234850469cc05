package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"insureease/internal/application/models"
	"insureease/pkg/platform/sentinel"
)

const statusKeyPrefix = "insureease:status:"

// StatusProjection is the read model served by status lookups.
type StatusProjection struct {
	Status        models.Status `json:"application_status"`
	Date          time.Time     `json:"application_date"`
	ApplicantName string        `json:"applicant_name"`
}

// StatusCache holds status projections so repeated lookups skip the store.
// Entries are invalidated on every status transition.
type StatusCache interface {
	Get(ctx context.Context, id string) (*StatusProjection, error)
	Set(ctx context.Context, id string, projection *StatusProjection) error
	Invalidate(ctx context.Context, id string) error
}

// RedisStatusCache is a Redis-backed status cache for deployments where
// multiple instances serve lookups. Failures degrade to store reads, so
// callers treat every error as a miss.
type RedisStatusCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStatusCache(client *redis.Client, ttl time.Duration) *RedisStatusCache {
	return &RedisStatusCache{client: client, ttl: ttl}
}

func (c *RedisStatusCache) Get(ctx context.Context, id string) (*StatusProjection, error) {
	payload, err := c.client.Get(ctx, statusKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("get status projection: %w", err)
	}
	var projection StatusProjection
	if err := json.Unmarshal(payload, &projection); err != nil {
		return nil, fmt.Errorf("unmarshal status projection: %w", err)
	}
	return &projection, nil
}

func (c *RedisStatusCache) Set(ctx context.Context, id string, projection *StatusProjection) error {
	payload, err := json.Marshal(projection)
	if err != nil {
		return fmt.Errorf("marshal status projection: %w", err)
	}
	return c.client.Set(ctx, statusKeyPrefix+id, payload, c.ttl).Err()
}

func (c *RedisStatusCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, statusKeyPrefix+id).Err()
}
