package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	app := cli.NewApp()
	app.Action = cli.ShowAppHelp
	app.Name = "guildkit"
	app.Usage = ""
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Usage: "Path to a toml config file, overridden by environment variables",
		},
	}
	app.Commands = []*cli.Command{
		{
			Action:      server.startCron,
			Name:        "cron",
			Usage:       "Start the deadline scheduler",
			Flags:       []cli.Flag{},
			Category:    "Worker",
			Description: `Runs the periodic scans that expire tickets, polls, giveaways, and reminders, plus the retention sweep.`,
		},
		{
			Action:      server.startMigrate,
			Name:        "migrate",
			Usage:       "Migrate database tables",
			Flags:       []cli.Flag{},
			Category:    "Database",
			Description: `Creates or updates the lifecycle entity tables.`,
		},
	}

	s.app = app
}
