package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/eliteassociate/realty-service/internal/entity"
	"github.com/redis/go-redis/v9"
)

const propertyTTL = 1 * time.Hour

// PropertyCache is a read-through cache for single-property lookups.
type PropertyCache struct {
	client *redis.Client
}

func NewPropertyCache(addr string) (*PropertyCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return &PropertyCache{client: client}, nil
}

// GetProperty returns the cached listing, or (nil, nil) on a miss.
func (c *PropertyCache) GetProperty(ctx context.Context, id string) (*entity.Property, error) {
	data, err := c.client.Get(ctx, "property:"+id).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var property entity.Property
	if err := json.Unmarshal(data, &property); err != nil {
		return nil, err
	}
	return &property, nil
}

func (c *PropertyCache) SetProperty(ctx context.Context, property *entity.Property) error {
	data, err := json.Marshal(property)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "property:"+property.ID.Hex(), data, propertyTTL).Err()
}

func (c *PropertyCache) DeleteProperty(ctx context.Context, id string) error {
	return c.client.Del(ctx, "property:"+id).Err()
}

func (c *PropertyCache) Close() error {
	return c.client.Close()
}
