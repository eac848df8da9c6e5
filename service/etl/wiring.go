package etl

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"retail.GO/config"
	"retail.GO/core/cache"
)

// NewPipeline builds a pipeline from cfg. With rdb non-nil the pass drops the
// /api list cache and stores its summary in Redis; with cfg.AMQPURL set it is
// also published to RabbitMQ.
func NewPipeline(db *gorm.DB, cfg config.ETLConfig, rdb *redis.Client) *Pipeline {
	p := &Pipeline{
		DB:         db,
		Load:       LoadOptions{StoreAddress: cfg.StoreAddress},
		Reporter:   &Reporter{OutputDir: cfg.OutputDir, ChartFile: cfg.ChartFile},
		RecordRuns: true,
	}
	if rdb != nil {
		p.Notifiers = append(p.Notifiers,
			&CacheNotifier{Cache: cache.NewRedisListCache(rdb, 0), Resources: WrittenResources},
			&RedisNotifier{Client: rdb},
		)
	}
	if cfg.AMQPURL != "" {
		p.Notifiers = append(p.Notifiers, &AMQPNotifier{URL: cfg.AMQPURL, Queue: cfg.AMQPQueue})
	}
	return p
}
