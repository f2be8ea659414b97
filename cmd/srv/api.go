package main

import (
	"fmt"
	"net/http"

	"github.com/allowx-lab/backend/internal/middleware"
	"github.com/allowx-lab/backend/pkg/router"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadLogger()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadPublisher()
	s.loadEndpoints()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.ApiServer.Host, cfg.ApiServer.Port),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.WithAuth(s.tokenEngine))

	// Public API
	publicRouter := s.router.Branch()
	{
		router.POST(publicRouter, "/login", s.userDomain.Login)
		router.GET(publicRouter, "/getAllowlist", s.allowlistDomain.Get)
		router.GET(publicRouter, "/getListAllowlist", s.allowlistDomain.GetList)
		router.GET(publicRouter, "/getWinners", s.winnerDomain.GetList)
		router.GET(publicRouter, "/getLeaderboard", s.statisticDomain.GetLeaderboard)
	}

	// These following APIs need authentication.
	authRouter := s.router.Branch()
	authRouter.Before(middleware.MustAuth)
	{
		// User API
		router.GET(authRouter, "/getMe", s.userDomain.GetMe)

		// Allowlist API
		router.POST(authRouter, "/createAllowlist", s.allowlistDomain.Create)
		router.POST(authRouter, "/completeAllowlist", s.allowlistDomain.Complete)
		router.POST(authRouter, "/cancelAllowlist", s.allowlistDomain.Cancel)

		// Participation API
		router.POST(authRouter, "/startParticipation", s.participationDomain.Start)
		router.GET(authRouter, "/getParticipationState", s.participationDomain.GetState)
		router.POST(authRouter, "/completeTask", s.participationDomain.CompleteTask)
		router.POST(authRouter, "/advanceParticipation", s.participationDomain.Advance)
		router.POST(authRouter, "/backParticipation", s.participationDomain.Back)
		router.POST(authRouter, "/submitEntry", s.participationDomain.Submit)
		router.POST(authRouter, "/cancelParticipation", s.participationDomain.Cancel)

		// Winner API
		router.GET(authRouter, "/getPendingWinners", s.winnerDomain.GetPending)
		router.POST(authRouter, "/claimWinner", s.winnerDomain.Claim)
	}
}
