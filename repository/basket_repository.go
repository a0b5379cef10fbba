package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"storefront-service/models"

	"github.com/redis/go-redis/v9"
)

// BasketStore holds pre-checkout baskets keyed by user.
type BasketStore interface {
	GetBasket(ctx context.Context, userID string) (*models.Basket, error)
	SaveBasket(ctx context.Context, basket *models.Basket) error
	DeleteBasket(ctx context.Context, userID string) error
}

type RedisBasketRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisBasketRepository(client *redis.Client, ttl time.Duration) *RedisBasketRepository {
	return &RedisBasketRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisBasketRepository) getKey(userID string) string {
	return fmt.Sprintf("basket:user:%s", userID)
}

func (r *RedisBasketRepository) GetBasket(ctx context.Context, userID string) (*models.Basket, error) {
	data, err := r.client.Get(ctx, r.getKey(userID)).Result()
	if err == redis.Nil {
		// No basket yet
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var basket models.Basket
	if err := json.Unmarshal([]byte(data), &basket); err != nil {
		return nil, err
	}
	return &basket, nil
}

func (r *RedisBasketRepository) SaveBasket(ctx context.Context, basket *models.Basket) error {
	basket.UpdatedAt = time.Now()

	data, err := json.Marshal(basket)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, r.getKey(basket.UserID), data, r.ttl).Err()
}

func (r *RedisBasketRepository) DeleteBasket(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.getKey(userID)).Err()
}
