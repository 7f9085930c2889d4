package utils

import (
	"context"
	"log"

	"github.com/redis/go-redis/v9"
)

var rdb *redis.Client

// InitRedis connects the shared Redis client.
func InitRedis(url, password string, db int) error {
	rdb = redis.NewClient(&redis.Options{
		Addr:     url,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}

	log.Println("Redis connected")
	return nil
}

// GetRedis returns the shared Redis client.
func GetRedis() *redis.Client {
	return rdb
}

// CloseRedis closes the shared Redis client.
func CloseRedis() error {
	if rdb != nil {
		return rdb.Close()
	}
	return nil
}
