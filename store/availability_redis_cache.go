package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
)

// Availability entries only bridge repeated reads of the same screen; the
// booking transaction re-validates against the store, so a short TTL is
// enough.
const availabilityTTL = 30 * time.Second

type AvailabilityRedisCache struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewAvailabilityRedisCache(client *redis.Client, tracer trace.Tracer) domain.AvailabilityCache {
	return &AvailabilityRedisCache{
		client: client,
		tracer: tracer,
	}
}

// Keys render the day in UTC: decoding a stored date drops its location but
// keeps the instant, and Del must build the same key Post built.
func availabilityKey(courtId string, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("availability:%s:%s:%d", courtId, date.UTC().Format("2006-01-02"), durationMinutes)
}

func (cache *AvailabilityRedisCache) Get(ctx context.Context, courtId string, date time.Time, durationMinutes int) ([]int, error) {
	ctx, span := cache.tracer.Start(ctx, "AvailabilityCache.Get")
	defer span.End()

	value, err := cache.client.Get(availabilityKey(courtId, date, durationMinutes)).Result()
	if err != nil {
		return nil, err
	}

	var hours []int
	if err := json.Unmarshal([]byte(value), &hours); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return hours, nil
}

func (cache *AvailabilityRedisCache) Post(ctx context.Context, courtId string, date time.Time, durationMinutes int, hours []int) error {
	ctx, span := cache.tracer.Start(ctx, "AvailabilityCache.Post")
	defer span.End()

	value, err := json.Marshal(hours)
	if err != nil {
		return err
	}

	result := cache.client.Set(availabilityKey(courtId, date, durationMinutes), value, availabilityTTL)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error posting cached availability")
		log.Printf("redis set error: %s", result.Err())
		return result.Err()
	}
	return nil
}

func (cache *AvailabilityRedisCache) Invalidate(ctx context.Context, courtId string, date time.Time) error {
	ctx, span := cache.tracer.Start(ctx, "AvailabilityCache.Invalidate")
	defer span.End()

	keys := make([]string, 0, len(domain.AllowedDurations))
	for _, duration := range domain.AllowedDurations {
		keys = append(keys, availabilityKey(courtId, date, duration))
	}

	result := cache.client.Del(keys...)
	if result.Err() != nil {
		span.SetStatus(codes.Error, "Error invalidating cached availability")
		log.Println(result.Err())
		return result.Err()
	}
	return nil
}
