package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/phonevilla/store_api/internal/cache"
)

// pinRate limits PIN verification attempts per client IP to slow down
// brute forcing of the 4-digit PIN.
const pinRate = "5-M"

// PINRateLimit returns a middleware limiting PIN verification attempts.
// With a Redis client the limit is shared across instances; otherwise an
// in-process store is used.
func PINRateLimit(redisClient *cache.RedisClient) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(pinRate)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid rate limit format")
	}

	var store limiter.Store
	if redisClient != nil {
		store, err = sredis.NewStoreWithOptions(redisClient.Client(), limiter.StoreOptions{
			Prefix: "ratelimit:pin",
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create redis rate limit store")
		}
	} else {
		store = memory.NewStore()
	}

	return mgin.NewMiddleware(limiter.New(store, rate))
}
