package config

import (
	"context"
	"log"
	"os"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis connects the global Redis client + lock client.
// Redis is a best-effort optimization here (match lock, rate limiter);
// reliability must not depend on it, so a failed connect only warns.
func ConnectRedis() {
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		log.Printf("REDIS_ADDRESS not set; running without redis")
		return
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: "",
		DB:       0, // use default DB
		PoolSize: 100,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("failed to connect redis (addr=%s): %v; running without redis", redisAddr, err)
		return
	}

	rdb = client
	locker = redislock.New(client)
	log.Printf("connected to redis (addr=%s)", redisAddr)
}
