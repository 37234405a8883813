// Package bootstrap establishes the process-wide runtime dependencies.
package bootstrap

import (
	"fmt"
	"strings"

	"feedgraph/internal/cache"
	"feedgraph/internal/config"
	"feedgraph/internal/database"
	"feedgraph/internal/middleware"
	"feedgraph/internal/models"
	"feedgraph/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// demoCounts is the data set loaded into an empty development database.
var demoCounts = seed.Counts{Users: 12, Posts: 40, MaxCommentsPerPost: 5, MaxLikesPerPost: 8}

// InitRuntime connects to the database and Redis. A nil Redis client is
// returned when Redis is unreachable.
func InitRuntime(cfg *config.Config) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if err := seedDemoData(cfg, db); err != nil {
		return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
	}

	return db, r, nil
}

// seedDemoData fills an empty development database when SEED_DEMO_DATA is set.
func seedDemoData(cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil || !cfg.SeedDemoData {
		return nil
	}
	if !strings.EqualFold(cfg.Env, "development") {
		middleware.Logger.Warn("SEED_DEMO_DATA ignored outside development")
		return nil
	}

	var users int64
	if err := db.Model(&models.User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	s, err := seed.NewSeeder(db, seed.Options{})
	if err != nil {
		return err
	}
	_, err = s.Run(demoCounts)
	return err
}
