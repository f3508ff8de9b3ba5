package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wirunw/pms2025/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health reports DB and Redis connectivity plus the depth of the activity
// job queue, so a stuck audit worker shows up before the queue fills.
// Never exposes credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		pendingJobs := int64(0)
		if err := rdb.Ping(ctx).Err(); err != nil {
			redisStatus = "error"
		} else {
			pendingJobs, _ = rdb.LLen(ctx, worker.QueueActivity).Result()
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":           status == http.StatusOK,
			"db":           dbStatus,
			"redis":        redisStatus,
			"pending_jobs": pendingJobs,
		})
	}
}
