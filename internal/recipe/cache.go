package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// Cache provides Redis-backed catalog caching so page loads do not hit
// Postgres on every session start.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CatalogCache = (*Cache)(nil)

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func pageKey(category string, page int) string {
	return fmt.Sprintf("recipes:%s:%d", category, page)
}

func categoryKey(category string) string {
	return fmt.Sprintf("recipes:%s:all", category)
}

func (c *Cache) GetPage(ctx context.Context, category string, page int) ([]Recipe, error) {
	return c.get(ctx, pageKey(category, page))
}

func (c *Cache) SetPage(ctx context.Context, category string, page int, recipes []Recipe) error {
	return c.set(ctx, pageKey(category, page), recipes)
}

func (c *Cache) GetCategory(ctx context.Context, category string) ([]Recipe, error) {
	return c.get(ctx, categoryKey(category))
}

func (c *Cache) SetCategory(ctx context.Context, category string, recipes []Recipe) error {
	return c.set(ctx, categoryKey(category), recipes)
}

func (c *Cache) get(ctx context.Context, key string) ([]Recipe, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	var recipes []Recipe
	if err := json.Unmarshal(data, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (c *Cache) set(ctx context.Context, key string, recipes []Recipe) error {
	data, err := json.Marshal(recipes)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, data, c.ttl).Err()
}
