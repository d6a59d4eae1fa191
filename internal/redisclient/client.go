// Package redisclient caches generation status for cheap polling and
// tracks draft-session liveness with TTL keys.
package redisclient

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

func generationKey(orderID int64) string {
	return fmt.Sprintf("generation:%d", orderID)
}

// SetGenerationStatus caches the generation status and progress of an order
func (c *Client) SetGenerationStatus(ctx context.Context, orderID int64, status string, progress int) error {
	pipe := c.rdb.Pipeline()
	pipe.HSet(ctx, generationKey(orderID), "status", status)
	pipe.HSet(ctx, generationKey(orderID), "progress", progress)

	_, err := pipe.Exec(ctx)
	return err
}

// GetGenerationStatus retrieves the cached generation status of an order.
// A miss returns ok=false so callers can fall back to the database.
func (c *Client) GetGenerationStatus(ctx context.Context, orderID int64) (status string, progress int, ok bool, err error) {
	result, err := c.rdb.HGetAll(ctx, generationKey(orderID)).Result()
	if err != nil {
		return "", 0, false, err
	}
	if len(result) == 0 {
		return "", 0, false, nil
	}

	progress, _ = strconv.Atoi(result["progress"])
	return result["status"], progress, true, nil
}

// ClearGenerationStatus drops the cached status once an order is terminal
func (c *Client) ClearGenerationStatus(ctx context.Context, orderID int64) error {
	return c.rdb.Del(ctx, generationKey(orderID)).Err()
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("draft-session:%s", sessionID)
}

// TouchDraftSession marks a draft session alive for ttl
func (c *Client) TouchDraftSession(ctx context.Context, sessionID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionKey(sessionID), "1", ttl).Err()
}

// DraftSessionAlive reports whether the session key has not expired
func (c *Client) DraftSessionAlive(ctx context.Context, sessionID string) (bool, error) {
	result, err := c.rdb.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, err
	}
	return result > 0, nil
}

// DeleteDraftSession drops the session key on submission or abandonment
func (c *Client) DeleteDraftSession(ctx context.Context, sessionID string) error {
	return c.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
