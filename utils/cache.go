// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"counselconnect/config"

	"github.com/go-redis/redis/v8"
)

var (
	// SessionClient holds chat sessions between requests.
	SessionClient *redis.Client
	// ReservationClient holds short-lived slot reservations during booking.
	ReservationClient *redis.Client
)

// InitSessionCache initializes the Redis client backing the chat session store.
func InitSessionCache() {
	SessionClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisSessionDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := SessionClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Sessions): %v", err)
	}
}

// GetSessionClient returns the session cache client.
func GetSessionClient() *redis.Client {
	if SessionClient == nil {
		InitSessionCache()
	}
	return SessionClient
}

// InitReservationCache initializes the Redis client for slot reservation locks.
func InitReservationCache() {
	ReservationClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReservationDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := ReservationClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Reservations): %v", err)
	}
}

// GetReservationClient returns the Redis client for slot reservation locks.
func GetReservationClient() *redis.Client {
	if ReservationClient == nil {
		InitReservationCache()
	}
	return ReservationClient
}
