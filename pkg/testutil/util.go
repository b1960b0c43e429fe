package testutil

import (
	"context"
	"time"

	"github.com/guildkit/backend/config"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/pkg/logger"
	"github.com/guildkit/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	// An in-memory sqlite database exists per connection.
	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Configs{
		Env: "testing",
		Kafka: config.KafkaConfigs{
			EventTopic: "lifecycle-events",
		},
		Scheduler: config.SchedulerConfigs{
			ScanInterval:        30 * time.Second,
			DispatchConcurrency: 4,
		},
		Retention: config.RetentionConfigs{
			SweepInterval: time.Hour,
			Window:        30 * 24 * time.Hour,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID int64) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
