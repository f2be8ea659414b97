package main

import (
	"context"
	"net/http"

	"github.com/allowx-lab/backend/config"
	"github.com/allowx-lab/backend/internal/client"
	"github.com/allowx-lab/backend/internal/domain"
	"github.com/allowx-lab/backend/internal/domain/entryflow"
	"github.com/allowx-lab/backend/internal/domain/taskverify"
	"github.com/allowx-lab/backend/internal/entity"
	"github.com/allowx-lab/backend/internal/model"
	"github.com/allowx-lab/backend/internal/repository"
	"github.com/allowx-lab/backend/pkg/api/discord"
	"github.com/allowx-lab/backend/pkg/api/telegram"
	"github.com/allowx-lab/backend/pkg/api/twitter"
	"github.com/allowx-lab/backend/pkg/authenticator"
	"github.com/allowx-lab/backend/pkg/kafka"
	"github.com/allowx-lab/backend/pkg/logger"
	"github.com/allowx-lab/backend/pkg/pubsub"
	"github.com/allowx-lab/backend/pkg/router"
	"github.com/allowx-lab/backend/pkg/xcontext"
	"github.com/allowx-lab/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	ctx context.Context
	app *cli.App

	userRepo          repository.UserRepository
	allowlistRepo     repository.AllowlistRepository
	participationRepo repository.ParticipationRepository
	winnerRepo        repository.WinnerRepository

	userDomain          domain.UserDomain
	allowlistDomain     domain.AllowlistDomain
	participationDomain domain.ParticipationDomain
	winnerDomain        domain.WinnerDomain
	statisticDomain     domain.StatisticDomain

	tokenEngine authenticator.TokenEngine[model.AccessToken]
	publisher   pubsub.Publisher
	redisClient xredis.Client

	twitterEndpoint  twitter.IEndpoint
	discordEndpoint  discord.IEndpoint
	telegramEndpoint telegram.IEndpoint
	oracle           entryflow.Oracle

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	s.ctx = xcontext.WithConfigs(context.Background(), config.Load())
}

func (s *srv) loadLogger() {
	level := logger.INFO
	if xcontext.Configs(s.ctx).Env == "local" {
		level = logger.DEBUG
	}

	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) loadDatabase() {
	dbCfg := xcontext.Configs(s.ctx).Database
	db, err := gorm.Open(mysql.Open(dbCfg.ConnectionString()),
		&gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithDB(s.ctx, db)

	if err := entity.MigrateTable(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadRedisClient() {
	redisClient, err := xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis)
	if err != nil {
		panic(err)
	}

	s.redisClient = redisClient
}

func (s *srv) loadPublisher() {
	cfg := xcontext.Configs(s.ctx).Kafka
	s.publisher = kafka.NewPublisher(cfg.ClientID, []string{cfg.Addr})
}

func (s *srv) loadEndpoints() {
	cfg := xcontext.Configs(s.ctx)
	s.twitterEndpoint = twitter.New(cfg.Twitter)
	s.discordEndpoint = discord.New(cfg.Discord)
	s.telegramEndpoint = telegram.New(cfg.Telegram)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.allowlistRepo = repository.NewAllowlistRepository()
	s.participationRepo = repository.NewParticipationRepository()
	s.winnerRepo = repository.NewWinnerRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)
	s.tokenEngine = authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration)

	s.oracle = client.NewOracle(s.ctx, s.userRepo, s.discordEndpoint)
	verifierFactory := taskverify.NewFactory(
		s.userRepo, s.twitterEndpoint, s.discordEndpoint, s.telegramEndpoint)

	s.userDomain = domain.NewUserDomain(s.userRepo, s.tokenEngine)
	s.allowlistDomain = domain.NewAllowlistDomain(
		s.allowlistRepo, s.participationRepo, s.winnerRepo, s.publisher, verifierFactory)
	s.participationDomain = domain.NewParticipationDomain(
		s.allowlistRepo,
		s.participationRepo,
		s.userRepo,
		entryflow.NewAccessVerifier(s.oracle),
		entryflow.NewEntryValidator(
			s.allowlistRepo, s.participationRepo, s.oracle, s.redisClient, s.publisher),
		verifierFactory,
	)
	s.winnerDomain = domain.NewWinnerDomain(s.winnerRepo, s.publisher)
	s.statisticDomain = domain.NewStatisticDomain(s.allowlistRepo, s.redisClient)
}
