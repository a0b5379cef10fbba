package repository

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DedupStore suppresses reprocessing of redelivered webhook events. The
// gateway delivers at least once; marking a session id before reconciling
// turns that into at-most-one fulfillment per session.
type DedupStore interface {
	// MarkDelivered records the session id if it has not been seen before and
	// reports whether this call was the first delivery.
	MarkDelivered(ctx context.Context, sessionID string) (bool, error)
}

type RedisDedupRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisDedupRepository(client *redis.Client, ttl time.Duration) *RedisDedupRepository {
	return &RedisDedupRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisDedupRepository) getKey(sessionID string) string {
	return "webhook:session:" + sessionID
}

func (r *RedisDedupRepository) MarkDelivered(ctx context.Context, sessionID string) (bool, error) {
	return r.client.SetNX(ctx, r.getKey(sessionID), time.Now().UTC().Format(time.RFC3339), r.ttl).Result()
}
