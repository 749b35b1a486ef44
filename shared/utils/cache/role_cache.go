package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"organizations-backend/shared/authz"
	"organizations-backend/shared/config"
)

// DefaultTTL applies when the cache is built with a non-positive ttl
var DefaultTTL = 15 * time.Minute

// NegativeTTL caps how long a "holds no role" answer is kept
var NegativeTTL = time.Minute

// noRole marks a cached "holds no role" answer
const noRole = "-"

// errStaleRole reports that a role changed while its answer was being read
var errStaleRole = errors.New("role changed during read")

// RoleCache caches RoleOf answers of an underlying oracle in redis and drops
// them whenever the role changes through the cache. Every change bumps a
// version key; an answer is only written back if the version it was read
// under is still current.
type RoleCache struct {
	next   authz.RoleOracle
	client      *redis.Client
	ttl         time.Duration
	negativeTTL time.Duration
	logger      *zap.Logger
}

var _ authz.RoleOracle = (*RoleCache)(nil)

// NewRedisClient connects to the configured redis and pings it
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.GetRedisDB(),
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRoleCache(next authz.RoleOracle, client *redis.Client, ttl time.Duration, logger *zap.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	negativeTTL := NegativeTTL
	if ttl < negativeTTL {
		negativeTTL = ttl
	}
	return &RoleCache{
		next:        next,
		client:      client,
		ttl:         ttl,
		negativeTTL: negativeTTL,
		logger:      logger,
	}
}

// RoleKey is the cache key of one subject's role in a context
func RoleKey(subject uuid.UUID, c authz.Context) string {
	return fmt.Sprintf("role:%s:%s:%s", c.Type, c.ID, subject)
}

// VersionKey counts the role changes of one subject in a context
func VersionKey(subject uuid.UUID, c authz.Context) string {
	return fmt.Sprintf("rolever:%s:%s:%s", c.Type, c.ID, subject)
}

func (rc *RoleCache) RoleOf(ctx context.Context, subject uuid.UUID, c authz.Context) (authz.Role, error) {
	key := RoleKey(subject, c)

	cached, err := rc.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if cached == noRole {
			return "", nil
		}
		return authz.Role(cached), nil
	case errors.Is(err, redis.Nil):
		rc.logger.Debug("role cache miss", zap.String("key", key))
	default:
		// redis being unavailable never fails the request
		rc.logger.Warn("role cache read failed", zap.String("key", key), zap.Error(err))
	}

	// read the version before the oracle so a concurrent change is noticed
	version, versionErr := rc.client.Get(ctx, VersionKey(subject, c)).Result()
	if errors.Is(versionErr, redis.Nil) {
		version, versionErr = "", nil
	}

	role, err := rc.next.RoleOf(ctx, subject, c)
	if err != nil {
		return "", err
	}
	if versionErr != nil {
		return role, nil
	}

	value, ttl := string(role), rc.ttl
	if value == "" {
		value, ttl = noRole, rc.negativeTTL
	}
	rc.store(ctx, subject, c, version, value, ttl)
	return role, nil
}

// store writes value unless the version moved since it was read
func (rc *RoleCache) store(ctx context.Context, subject uuid.UUID, c authz.Context, version, value string, ttl time.Duration) {
	key, versionKey := RoleKey(subject, c), VersionKey(subject, c)

	err := rc.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, versionKey).Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != version {
			return errStaleRole
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, value, ttl)
			return nil
		})
		return err
	}, versionKey)

	switch {
	case err == nil:
	case errors.Is(err, errStaleRole), errors.Is(err, redis.TxFailedErr):
		rc.logger.Debug("role changed during read, not caching", zap.String("key", key))
	default:
		rc.logger.Warn("role cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (rc *RoleCache) HasRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) (bool, error) {
	held, err := rc.RoleOf(ctx, subject, c)
	if err != nil {
		return false, err
	}
	return held == role, nil
}

func (rc *RoleCache) AssignRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) error {
	if err := rc.next.AssignRole(ctx, subject, role, c); err != nil {
		return err
	}
	rc.invalidate(ctx, subject, c)
	return nil
}

func (rc *RoleCache) RemoveRole(ctx context.Context, subject uuid.UUID, role authz.Role, c authz.Context) error {
	if err := rc.next.RemoveRole(ctx, subject, role, c); err != nil {
		return err
	}
	rc.invalidate(ctx, subject, c)
	return nil
}

// ContextIDs and Members are list queries and always go to the oracle
func (rc *RoleCache) ContextIDs(ctx context.Context, subject uuid.UUID, contextType string) ([]string, error) {
	return rc.next.ContextIDs(ctx, subject, contextType)
}

func (rc *RoleCache) Members(ctx context.Context, c authz.Context) ([]authz.Assignment, error) {
	return rc.next.Members(ctx, c)
}

func (rc *RoleCache) invalidate(ctx context.Context, subject uuid.UUID, c authz.Context) {
	key, versionKey := RoleKey(subject, c), VersionKey(subject, c)

	_, err := rc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, versionKey)
		pipe.Expire(ctx, versionKey, rc.ttl)
		pipe.Del(ctx, key)
		return nil
	})
	if err != nil {
		rc.logger.Warn("role cache invalidation failed", zap.String("key", key), zap.Error(err))
		return
	}
	rc.logger.Debug("role cache invalidated", zap.String("key", key))
}
