package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/geotk/marketplace/pkg/logger"
)

// Config holds response cache configuration
type Config struct {
	DefaultTTL      time.Duration
	CacheableStatus []int
}

// DefaultConfig returns the default cache configuration
func DefaultConfig() Config {
	return Config{
		DefaultTTL:      5 * time.Minute,
		CacheableStatus: []int{200, 203, 204, 300, 301, 404, 410},
	}
}

// recorder captures the response so it can be written to Redis after serving
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *recorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

// Middleware caches GET responses in Redis. With a nil client it is a pass-through.
func Middleware(client *redis.Client, config Config, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if client == nil || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		ctx := context.Background()

		cached, err := client.Get(ctx, key).Bytes()
		if err == nil && len(cached) > 0 {
			logger.Logger.Debug().
				Str("path", r.URL.Path).
				Str("cache_key", key).
				Msg("Cache hit")

			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.Write(cached)
			return
		}

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		rec.Header().Set("X-Cache", "MISS")
		next.ServeHTTP(rec, r)

		if !isStatusCacheable(rec.status, config.CacheableStatus) {
			return
		}

		if err := client.Set(ctx, key, rec.body.Bytes(), config.DefaultTTL).Err(); err != nil {
			logger.Logger.Warn().
				Err(err).
				Str("cache_key", key).
				Msg("Failed to cache response")
			return
		}

		logger.Logger.Debug().
			Str("path", r.URL.Path).
			Str("cache_key", key).
			Dur("ttl", config.DefaultTTL).
			Int("size", rec.body.Len()).
			Msg("Response cached")
	}
}

// cacheKey generates a unique cache key for the request
func cacheKey(r *http.Request) string {
	components := fmt.Sprintf("%s:%s:%s:%s",
		r.Method,
		r.URL.Path,
		r.URL.RawQuery,
		r.Header.Get("Authorization"),
	)

	hash := sha256.Sum256([]byte(components))
	return fmt.Sprintf("cache:%s", hex.EncodeToString(hash[:]))
}

func isStatusCacheable(status int, cacheable []int) bool {
	for _, s := range cacheable {
		if s == status {
			return true
		}
	}
	return false
}

// NewRedisClient connects to Redis, returning nil when the address is empty
// so callers can treat caching as optional.
func NewRedisClient(addr string) *redis.Client {
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Logger.Warn().Err(err).Str("addr", addr).Msg("Redis unavailable, response caching disabled")
		return nil
	}

	logger.Logger.Info().Str("addr", addr).Msg("Redis response cache enabled")
	return client
}
