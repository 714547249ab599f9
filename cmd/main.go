package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/telebot.v3"

	"staffbook/config"
	"staffbook/internal/app/service"
	"staffbook/internal/delivery/telegram"
	"staffbook/internal/delivery/telegram/router"
	"staffbook/internal/logger"
	"staffbook/internal/repository/sqlite"
	"staffbook/pkg/workerpool"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		boot := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.Log)
	log.Info().Msg("starting staffbook")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("dsn", cfg.DB.DSN).Msg("open database")
	}
	defer db.Close()

	if err := sqlite.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	pool := workerpool.NewWorkerPool(cfg.Pool.Workers, cfg.Pool.QueueSize)
	defer pool.Close()

	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.Telegram.Token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			log.Error().Err(err).Msg("telegram handler")
		},
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create bot")
	}

	handler := &telegram.Handler{
		Bot:       bot,
		Employees: service.NewEmployeeService(sqlite.NewEmployeeRepo(db)),
		Async:     service.NewAsyncService(pool),
		Callbacks: router.New(log),
		Log:       log,
	}
	handler.Register()

	go func() {
		<-ctx.Done()
		log.Info().Msg("stopping bot")
		bot.Stop()
	}()

	log.Info().Str("bot", bot.Me.Username).Msg("bot started")
	bot.Start()
}
