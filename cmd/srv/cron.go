package main

import (
	"github.com/guildkit/backend/internal/domain/cron"
	"github.com/guildkit/backend/pkg/xcontext"

	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(ct *cli.Context) error {
	s.loadConfig(ct)
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadRepos()
	s.loadDomains()

	configs := xcontext.Configs(s.ctx)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewAutoCloseTicketsCronJob(
		s.ticketRepo, s.gatewayDomain, s.clock, configs.Scheduler.ScanInterval))
	cronJobManager.Register(cron.NewClosePollsCronJob(
		s.pollRepo, s.gatewayDomain, s.clock, configs.Scheduler.ScanInterval))
	cronJobManager.Register(cron.NewDrawGiveawaysCronJob(
		s.giveawayRepo, s.gatewayDomain, s.clock, configs.Scheduler.ScanInterval))
	cronJobManager.Register(cron.NewDeliverRemindersCronJob(
		s.reminderRepo, s.gatewayDomain, s.clock, configs.Scheduler.ScanInterval))
	cronJobManager.Register(cron.NewRetentionSweepCronJob(
		s.ticketRepo, s.pollRepo, s.giveawayRepo, s.reminderRepo,
		s.clock, configs.Retention.SweepInterval, configs.Retention.Window))

	cronJobManager.Start(s.ctx)

	return s.publisher.Stop(s.ctx)
}
