package geocache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	t "github.com/evanhutnik/weather-etl/internal/types"
	"github.com/go-redis/redis/v8"
)

type CacheOption func(*Cache)

type Cache struct {
	rc  *redis.Client
	ttl time.Duration
}

func AddrOption(addr string) CacheOption {
	return func(c *Cache) {
		c.rc = redis.NewClient(&redis.Options{
			Addr: addr,
		})
	}
}

func TTLOption(ttl time.Duration) CacheOption {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

func New(opts ...CacheOption) *Cache {
	c := &Cache{
		ttl: 30 * 24 * time.Hour,
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.rc == nil {
		panic("Missing address in geocache")
	}
	return c
}

func key(location string) string {
	return "geocode:" + strings.ToLower(strings.TrimSpace(location))
}

// Lookup returns cached coordinates for the location, or (nil, nil) on
// a miss. A nil cache always misses.
func (c *Cache) Lookup(ctx context.Context, location string) (*t.Coordinates, error) {
	if c == nil {
		return nil, nil
	}
	val, err := c.rc.Get(ctx, key(location)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, errors.New(fmt.Sprintf("redis error looking up %v: %s", location, err.Error()))
	}

	var coords t.Coordinates
	err = json.Unmarshal([]byte(val), &coords)
	if err != nil {
		return nil, errors.New(fmt.Sprintf("error unmarshalling cached coordinates for %v: %s", location, err.Error()))
	}
	return &coords, nil
}

// Store writes through the resolved coordinates. Best effort; a nil
// cache ignores the write.
func (c *Cache) Store(ctx context.Context, location string, coords t.Coordinates) error {
	if c == nil {
		return nil
	}
	val, err := json.Marshal(coords)
	if err != nil {
		return err
	}
	return c.rc.Set(ctx, key(location), val, c.ttl).Err()
}
