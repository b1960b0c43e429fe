package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Scheduler SchedulerConfigs
	Retention RetentionConfigs
	LogLevel  int
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type RedisConfigs struct {
	Addr string
}

type KafkaConfigs struct {
	Addr       string
	EventTopic string
}

type SchedulerConfigs struct {
	// ScanInterval is how often each deadline scan job queries for due
	// entities.
	ScanInterval time.Duration

	// DispatchConcurrency bounds how many due entities one scan dispatches
	// at the same time.
	DispatchConcurrency int
}

type RetentionConfigs struct {
	// SweepInterval is how often the retention job runs. Terminal entities
	// older than Window are purged; a zero Window keeps them forever.
	SweepInterval time.Duration
	Window        time.Duration
}
