package services

import (
	"errors"
	"time"

	"github.com/MikhailShapshay/test-task-loyalty-service/internal/database"
	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

// AddToDenylist revokes a token until its natural expiry.
func AddToDenylist(token string, ttl time.Duration) error {
	if database.RedisClient == nil {
		return errors.New("redis is not connected")
	}
	return database.RedisClient.Set(database.Ctx, denylistPrefix+token, "1", ttl).Err()
}

func IsDenylisted(token string) (bool, error) {
	if database.RedisClient == nil {
		return false, nil
	}
	_, err := database.RedisClient.Get(database.Ctx, denylistPrefix+token).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
