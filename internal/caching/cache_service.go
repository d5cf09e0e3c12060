package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CacheService memoizes resolved permission sets per user, plus generic
// string operations for short-lived values like presigned asset URLs.
// Lookups distinguish a cached empty set from a miss: a principal with no
// grants is a valid, cacheable answer.
type CacheService interface {
	GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, bool, error)
	SetPermissions(ctx context.Context, userID uuid.UUID, codes []string, ttl time.Duration) error
	InvalidatePermissions(ctx context.Context, userID uuid.UUID) error
	InvalidateAllPermissions(ctx context.Context) error

	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Ping(ctx context.Context) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// addresses by stripping the scheme
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	} else {
		log.Printf("DEBUG: Redis connection established successfully")
	}

	return &redisCacheService{client: client}
}

func permissionsKey(userID uuid.UUID) string {
	return fmt.Sprintf("navhub:perms:%s", userID.String())
}

func (r *redisCacheService) GetPermissions(ctx context.Context, userID uuid.UUID) ([]string, bool, error) {
	data, err := r.client.Get(ctx, permissionsKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil // cache miss
		}
		return nil, false, err
	}

	var codes []string
	if err := json.Unmarshal(data, &codes); err != nil {
		return nil, false, err
	}
	return codes, true, nil
}

func (r *redisCacheService) SetPermissions(ctx context.Context, userID uuid.UUID, codes []string, ttl time.Duration) error {
	if codes == nil {
		codes = []string{}
	}
	data, err := json.Marshal(codes)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, permissionsKey(userID), data, ttl).Err()
}

func (r *redisCacheService) InvalidatePermissions(ctx context.Context, userID uuid.UUID) error {
	return r.client.Del(ctx, permissionsKey(userID)).Err()
}

func (r *redisCacheService) InvalidateAllPermissions(ctx context.Context) error {
	keys, err := r.client.Keys(ctx, "navhub:perms:*").Result()
	if err != nil {
		return err
	}

	if len(keys) > 0 {
		return r.client.Del(ctx, keys...).Err()
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
