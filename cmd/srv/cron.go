package main

import (
	"github.com/allowx-lab/backend/internal/domain/cron"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRepos()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewWinnerExpiryCronJob(s.ctx, s.winnerRepo))
	cronJobManager.Start(s.ctx)

	return nil
}
