package redis

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// nowFunc is swapped in tests.
var nowFunc = time.Now

type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}
