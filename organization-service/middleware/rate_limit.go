package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"organizations-backend/shared/response"
)

// MessageTooManyAttempts is the 429 message
const MessageTooManyAttempts = "Too Many Attempts."

// RateLimitStore counts hits of a key inside a fixed window
type RateLimitStore interface {
	// Hit records one request and returns the count so far and the time left
	// in the current window.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

type rateWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryRateStore keeps windows in process memory
type MemoryRateStore struct {
	store map[string]*rateWindow
	mutex sync.Mutex
	now   func() time.Time
}

func NewMemoryRateStore() *MemoryRateStore {
	return &MemoryRateStore{
		store: make(map[string]*rateWindow),
		now:   time.Now,
	}
}

func (s *MemoryRateStore) Hit(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.now()
	w, exists := s.store[key]
	if !exists || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(window)}
		s.store[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

// Cleanup drops expired windows every interval until done is closed
func (s *MemoryRateStore) Cleanup(interval time.Duration, done <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mutex.Lock()
			now := s.now()
			for key, w := range s.store {
				if !now.Before(w.resetAt) {
					delete(s.store, key)
				}
			}
			s.mutex.Unlock()
		case <-done:
			return
		}
	}
}

// RedisRateStore shares windows between service instances
type RedisRateStore struct {
	client *redis.Client
	prefix string
}

func NewRedisRateStore(client *redis.Client, prefix string) *RedisRateStore {
	return &RedisRateStore{client: client, prefix: prefix}
}

func (s *RedisRateStore) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	key = s.prefix + key

	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit incr: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("rate limit expire: %w", err)
		}
		return count, window, nil
	}

	ttl, err := s.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("rate limit ttl: %w", err)
	}
	if ttl < 0 {
		// key lost its expiry, start a new window
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// RateLimitConfig bounds requests per caller
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// RateLimit throttles callers to cfg.MaxRequests per cfg.Window. Authenticated
// callers are keyed by user id, others by client IP. Store errors let the
// request through.
func RateLimit(store RateLimitStore, cfg RateLimitConfig, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := "ip:" + c.ClientIP()
		if userID, ok := c.Get("userID"); ok {
			if id, ok := userID.(uuid.UUID); ok {
				key = "user:" + id.String()
			}
		}

		count, resetIn, err := store.Hit(c.Request.Context(), key, cfg.Window)
		if err != nil {
			logger.Warn("rate limit store failed", zap.String("key", key), zap.Error(err))
			c.Next()
			return
		}

		remaining := int64(cfg.MaxRequests) - count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

		if count > int64(cfg.MaxRequests) {
			retryAfter := int64(resetIn.Round(time.Second) / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Failure(c, http.StatusTooManyRequests, MessageTooManyAttempts, nil)
			return
		}

		c.Next()
	}
}
