package cache

import (
	"Foodnote/config"
	"context"
	"fmt"
	"math"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// GeocodeCache 反向地理编码结果缓存，坐标取 4 位小数（约 11 米）
type GeocodeCache interface {
	Get(ctx context.Context, lat, lng float64) (string, bool)
	Set(ctx context.Context, lat, lng float64, location string)
}

// NewGeocodeCache 配置了 redis 时使用 redis，否则使用进程内缓存
func NewGeocodeCache(conf *config.Config, rdb *redis.Client) GeocodeCache {
	ttl := conf.Geocoder.CacheTTL
	if rdb != nil {
		return NewRedisGeocodeCache(rdb, ttl)
	}
	return NewMemoryGeocodeCache(ttl)
}

func geocodeKey(lat, lng float64) string {
	return fmt.Sprintf("foodnote:geocode:%.4f,%.4f", round4(lat), round4(lng))
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		// -0.0000 与 0.0000 视为同一个 key
		return 0
	}
	return r
}

type RedisGeocodeCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisGeocodeCache(rdb *redis.Client, ttl time.Duration) *RedisGeocodeCache {
	return &RedisGeocodeCache{rdb: rdb, ttl: ttl}
}

func (c *RedisGeocodeCache) Get(ctx context.Context, lat, lng float64) (string, bool) {
	val, err := c.rdb.Get(ctx, geocodeKey(lat, lng)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisGeocodeCache) Set(ctx context.Context, lat, lng float64, location string) {
	_ = c.rdb.Set(ctx, geocodeKey(lat, lng), location, c.ttl).Err()
}

type MemoryGeocodeCache struct {
	c *gocache.Cache
}

func NewMemoryGeocodeCache(ttl time.Duration) *MemoryGeocodeCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryGeocodeCache{c: gocache.New(ttl, 10*time.Minute)}
}

func (c *MemoryGeocodeCache) Get(_ context.Context, lat, lng float64) (string, bool) {
	v, ok := c.c.Get(geocodeKey(lat, lng))
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (c *MemoryGeocodeCache) Set(_ context.Context, lat, lng float64, location string) {
	c.c.SetDefault(geocodeKey(lat, lng), location)
}
