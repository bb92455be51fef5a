// Package redisconn turns the configured Redis URL into client options
// shared by the warning store and the asynq scheduler.
// This is part of the platform layer and contains no business logic.
package redisconn

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"

	"party_phonecountry/platform/config"

	"github.com/redis/go-redis/v9"
)

// ErrNotConfigured is returned when REDIS_URL is empty.
var ErrNotConfigured = errors.New("redis url not configured")

// Options parses the Redis URL. tlsInsecure skips certificate verification
// and forces TLS on when the URL does not ask for it.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, ErrNotConfigured
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if cfg.GetRedisTLSInsecure() {
			clone.InsecureSkipVerify = true
		}
		opt.TLSConfig = clone
	} else if cfg.GetRedisTLSInsecure() {
		opt.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return opt, nil
}

// NewClient connects to Redis and verifies the connection with PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opt, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
