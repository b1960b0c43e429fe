package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/guildkit/backend/config"
	"github.com/guildkit/backend/pkg/logger"

	"github.com/BurntSushi/toml"
)

// loadConfigs builds the process configuration. A toml file provides the
// base values when given; environment variables override it field by field.
func loadConfigs(path string) config.Configs {
	configs := defaultConfigs()

	if path != "" {
		if _, err := toml.DecodeFile(path, &configs); err != nil {
			log.Fatalf("cannot decode config file %s: %v", path, err)
		}
	}

	configs.Env = getEnv("ENV", configs.Env)
	configs.LogLevel = getEnvAsInt("LOG_LEVEL", configs.LogLevel)

	configs.Database.Host = getEnv("MYSQL_HOST", configs.Database.Host)
	configs.Database.Port = getEnv("MYSQL_PORT", configs.Database.Port)
	configs.Database.Database = getEnv("MYSQL_DATABASE", configs.Database.Database)
	configs.Database.User = getEnv("MYSQL_USER", configs.Database.User)
	configs.Database.Password = getEnv("MYSQL_PASSWORD", configs.Database.Password)

	configs.Redis.Addr = getEnv("REDIS_ADDRESS", configs.Redis.Addr)

	configs.Kafka.Addr = getEnv("KAFKA_ADDRESS", configs.Kafka.Addr)
	configs.Kafka.EventTopic = getEnv("KAFKA_EVENT_TOPIC", configs.Kafka.EventTopic)

	configs.Scheduler.ScanInterval = getEnvAsDuration(
		"SCHEDULER_SCAN_INTERVAL", configs.Scheduler.ScanInterval)
	configs.Scheduler.DispatchConcurrency = getEnvAsInt(
		"SCHEDULER_DISPATCH_CONCURRENCY", configs.Scheduler.DispatchConcurrency)

	configs.Retention.SweepInterval = getEnvAsDuration(
		"RETENTION_SWEEP_INTERVAL", configs.Retention.SweepInterval)
	configs.Retention.Window = getEnvAsDuration(
		"RETENTION_WINDOW", configs.Retention.Window)

	return configs
}

func defaultConfigs() config.Configs {
	return config.Configs{
		Env:      "local",
		LogLevel: logger.INFO,
		Database: config.DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "guildkit",
			User:     "guildkit",
		},
		Redis: config.RedisConfigs{
			Addr: "localhost:6379",
		},
		Kafka: config.KafkaConfigs{
			Addr:       "localhost:9092",
			EventTopic: "lifecycle-events",
		},
		Scheduler: config.SchedulerConfigs{
			ScanInterval:        30 * time.Second,
			DispatchConcurrency: 8,
		},
		Retention: config.RetentionConfigs{
			SweepInterval: time.Hour,
			Window:        30 * 24 * time.Hour,
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("invalid value of %s: %v", key, err)
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("invalid value of %s: %v", key, err)
	}
	return d
}
