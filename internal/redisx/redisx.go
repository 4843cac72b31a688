// Package redisx holds the Redis client setup and the cache key layout.
package redisx

import (
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// Catalog read cache: products:all -> JSON product list,
	// product:{id} -> JSON product.
	KeyProductList = "products:all"
	KeyProduct     = "product:%d"
)

// TTLCatalog bounds how stale a cached product view can get. Stock drift
// within the window is tolerated; checkout always re-validates.
var TTLCatalog = 30 * time.Second

func New(addr string) *redis.Client {
	r := redis.NewClient(&redis.Options{Addr: addr})
	_ = r.WithTimeout(2 * time.Second)
	return r
}
