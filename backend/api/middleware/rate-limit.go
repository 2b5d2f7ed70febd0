package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"papershare/backend/common"

	"github.com/gin-gonic/gin"
)

const (
	globalAPIRateLimitNum      = 480
	globalAPIRateLimitDuration = 3 * 60

	criticalRateLimitNum      = 20
	criticalRateLimitDuration = 20 * 60
)

var timeFormat = "2006-01-02T15:04:05.000Z"

var inMemoryRateLimiter common.InMemoryRateLimiter

func redisRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	ctx := context.Background()
	key := "rateLimit:" + mark + c.ClientIP()
	listLength, err := common.RDB.LLen(ctx, key).Result()
	if err != nil {
		common.SysError("rate limiter fell back to memory: " + err.Error())
		memoryRateLimiter(c, maxRequestNum, duration, mark)
		return
	}
	if listLength < int64(maxRequestNum) {
		common.RDB.LPush(ctx, key, time.Now().Format(timeFormat))
		common.RDB.Expire(ctx, key, time.Duration(duration)*time.Second)
	} else {
		oldTimeStr, _ := common.RDB.LIndex(ctx, key, -1).Result()
		oldTime, err := time.Parse(timeFormat, oldTimeStr)
		if err == nil && time.Since(oldTime).Seconds() < float64(duration) {
			c.Status(http.StatusTooManyRequests)
			c.Abort()
			return
		}
		common.RDB.LPush(ctx, key, time.Now().Format(timeFormat))
		common.RDB.LTrim(ctx, key, 0, int64(maxRequestNum-1))
		common.RDB.Expire(ctx, key, time.Duration(duration)*time.Second)
	}
	c.Next()
}

func memoryRateLimiter(c *gin.Context, maxRequestNum int, duration int64, mark string) {
	key := mark + c.ClientIP()
	if !inMemoryRateLimiter.Request(key, maxRequestNum, duration) {
		c.Status(http.StatusTooManyRequests)
		c.Abort()
		return
	}
	c.Next()
}

var initRateLimiterOnce sync.Once

func rateLimitFactory(maxRequestNum int, duration int64, mark string) func(c *gin.Context) {
	if common.RedisEnabled {
		return func(c *gin.Context) {
			redisRateLimiter(c, maxRequestNum, duration, mark)
		}
	}
	initRateLimiterOnce.Do(func() {
		inMemoryRateLimiter.Init(3 * time.Minute)
	})
	return func(c *gin.Context) {
		memoryRateLimiter(c, maxRequestNum, duration, mark)
	}
}

func GlobalAPIRateLimit() func(c *gin.Context) {
	return rateLimitFactory(globalAPIRateLimitNum, globalAPIRateLimitDuration, "GA")
}

func CriticalRateLimit() func(c *gin.Context) {
	return rateLimitFactory(criticalRateLimitNum, criticalRateLimitDuration, "CT")
}
