package main

import (
	"context"

	"github.com/guildkit/backend/internal/domain"
	"github.com/guildkit/backend/internal/entity"
	"github.com/guildkit/backend/internal/repository"
	"github.com/guildkit/backend/pkg/clock"
	"github.com/guildkit/backend/pkg/kafka"
	"github.com/guildkit/backend/pkg/logger"
	"github.com/guildkit/backend/pkg/pubsub"
	"github.com/guildkit/backend/pkg/xcontext"
	"github.com/guildkit/backend/pkg/xredis"

	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	ticketRepo      repository.TicketRepository
	pollRepo        repository.PollRepository
	giveawayRepo    repository.GiveawayRepository
	reminderRepo    repository.ReminderRepository
	guildConfigRepo repository.GuildConfigRepository

	ticketDomain      domain.TicketDomain
	pollDomain        domain.PollDomain
	giveawayDomain    domain.GiveawayDomain
	reminderDomain    domain.ReminderDomain
	guildConfigDomain domain.GuildConfigDomain
	gatewayDomain     domain.GatewayDomain

	redisClient xredis.Client
	publisher   pubsub.Publisher
	clock       clock.Clock
}

func (s *srv) loadConfig(ct *cli.Context) {
	s.ctx = xcontext.WithConfigs(context.Background(), loadConfigs(ct.String("config")))
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(xcontext.Configs(s.ctx).LogLevel))
}

func (s *srv) newDatabase() *gorm.DB {
	databaseCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       databaseCfg.ConnectionString(),
		DefaultStringSize:         256,
		DisableDatetimePrecision:  true,
		DontSupportRenameIndex:    true,
		DontSupportRenameColumn:   true,
		SkipInitializeWithVersion: false,
	}), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	s.publisher = kafka.NewPublisher(
		"guildkit-backend",
		[]string{xcontext.Configs(s.ctx).Kafka.Addr},
	)
}

func (s *srv) loadRepos() {
	s.ticketRepo = repository.NewTicketRepository()
	s.pollRepo = repository.NewPollRepository()
	s.giveawayRepo = repository.NewGiveawayRepository()
	s.reminderRepo = repository.NewReminderRepository()
	s.guildConfigRepo = repository.NewGuildConfigRepository(s.redisClient)
}

func (s *srv) loadDomains() {
	s.clock = clock.New()

	s.ticketDomain = domain.NewTicketDomain(s.ticketRepo, s.guildConfigRepo, s.publisher, s.clock)
	s.pollDomain = domain.NewPollDomain(s.pollRepo, s.guildConfigRepo, s.publisher, s.clock)
	s.giveawayDomain = domain.NewGiveawayDomain(s.giveawayRepo, s.guildConfigRepo, s.publisher, s.clock)
	s.reminderDomain = domain.NewReminderDomain(s.reminderRepo, s.publisher, s.clock)
	s.guildConfigDomain = domain.NewGuildConfigDomain(s.guildConfigRepo)
	s.gatewayDomain = domain.NewGatewayDomain(
		s.ticketDomain, s.pollDomain, s.giveawayDomain, s.reminderDomain)
}
