package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aliskhannn/exam-quiz-bot/internal/config"
	"github.com/aliskhannn/exam-quiz-bot/internal/delivery/httpapi"
	"github.com/aliskhannn/exam-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/exam-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/exam-quiz-bot/internal/logger"
	"github.com/aliskhannn/exam-quiz-bot/internal/metrics"
	"github.com/aliskhannn/exam-quiz-bot/internal/repository"
	"github.com/aliskhannn/exam-quiz-bot/internal/service"
	"github.com/aliskhannn/exam-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, lg); err != nil && !errors.Is(err, context.Canceled) {
		lg.Fatal("application stopped with error", zap.Error(err))
	}

	lg.Info("shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, lg *zap.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	questionRepo := repository.NewQuestionRepository(afero.NewOsFs(), repository.QuestionRepositoryConfig{
		DataDir:    cfg.DataDir,
		LegacyPath: cfg.LegacyPath,
		Extensions: cfg.Extensions,
	})
	questionService := service.NewQuestionService(questionRepo, m, lg)

	api := httpapi.NewHandler(questionService, storage.NewStatsStorage(cfg.HTTP.StatsClients), reg, lg)
	server := httpapi.NewServer(cfg.HTTP.Addr, api.Routes(), cfg.HTTP.ShutdownTimeout, lg)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return server.Run(ctx) })

	if !cfg.TelegramEnabled() {
		lg.Info("telegram token not set, running HTTP API only")
		return g.Wait()
	}

	dsn, err := cfg.DB.DSN()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		return err
	}
	defer pool.Close()

	quizService := service.NewQuizService(
		questionService,
		pgrepo.NewQuizRepository(pool),
		postgres.NewTransactor(pool),
		m,
		cfg.Quiz.Length,
	)

	quizStorage := storage.NewQuizStorage()

	handler, err := newTelegramHandler(cfg, lg, pool, questionService, quizService, quizStorage)
	if err != nil {
		return err
	}

	sweeper := service.NewSessionSweeper(quizService, quizStorage, cfg.Quiz.SessionTTL, cfg.Quiz.SweepSpec, lg)

	g.Go(func() error { return sweeper.Start(ctx) })
	g.Go(func() error { return handler.Run(ctx) })

	return g.Wait()
}

func newTelegramHandler(
	cfg *config.Config,
	lg *zap.Logger,
	pool *pgxpool.Pool,
	questionService *service.QuestionService,
	quizService *service.QuizService,
	quizStorage *storage.QuizStorage,
) (*telegram.Handler, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		return nil, err
	}

	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Botu başlat"},
		{Command: "quiz", Description: "Quiz başlat (örnek: /quiz 7)"},
		{Command: "categories", Description: "Kategoriler"},
		{Command: "stats", Description: "İstatistikler"},
		{Command: "reset", Description: "Geçmişi sıfırla"},
		{Command: "help", Description: "Yardım"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	bot.Debug = cfg.Env != "production"
	lg.Info("authorized on telegram", zap.String("account", bot.Self.UserName))

	return telegram.NewHandler(
		bot,
		lg,
		service.NewUserService(pgrepo.NewUserRepository(pool)),
		questionService,
		quizService,
		service.NewResetService(postgres.NewTransactor(pool), pgrepo.NewResetRepository(pool), pgrepo.NewQuizRepository(pool)),
		quizStorage,
	), nil
}
