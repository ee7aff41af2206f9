package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Redis keeps every game under its own string key. A zero ttl keeps games
// forever.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if client == nil {
		panic("redis client cannot be nil")
	}
	return &Redis{client: client, ttl: ttl}
}

func OpenRedis(ctx context.Context, addr string, ttl time.Duration) (*Redis, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}
	return NewRedis(client, ttl), nil
}

func (r *Redis) key(slug string) string {
	return KeyPrefix + slug
}

func (r *Redis) Create(ctx context.Context, slug string, state State) error {
	v, err := encode(state)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, r.key(slug), v, r.ttl).Result()
	if err != nil {
		return fmt.Errorf("redis: unable to create %s: %w", slug, err)
	}
	if !ok {
		return ErrSlugTaken
	}
	return nil
}

func (r *Redis) Save(ctx context.Context, slug string, state State) error {
	v, err := encode(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key(slug), v, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis: unable to save %s: %w", slug, err)
	}
	return nil
}

func (r *Redis) Load(ctx context.Context, slug string) (State, error) {
	v, err := r.client.Get(ctx, r.key(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return State{}, ErrNotFound
	}
	if err != nil {
		return State{}, fmt.Errorf("redis: unable to load %s: %w", slug, err)
	}
	return decode(v)
}

func (r *Redis) Delete(ctx context.Context, slug string) error {
	return r.client.Del(ctx, r.key(slug)).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
