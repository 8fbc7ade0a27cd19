package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"gopkg.in/telebot.v3"

	"shift-tracker/config"
	"shift-tracker/internal/app/reminder"
	"shift-tracker/internal/app/service"
	"shift-tracker/internal/delivery/http"
	"shift-tracker/internal/delivery/telegram"
	"shift-tracker/internal/domain"
	"shift-tracker/internal/ics"
	"shift-tracker/internal/platform/logger"
	"shift-tracker/internal/repository/postgres"
	"shift-tracker/internal/repository/sqlite"
	"shift-tracker/pkg/calendar"
	"shift-tracker/pkg/workerpool"
)

type stores struct {
	shifts      domain.ShiftRepo
	settings    domain.SettingsRepo
	subscribers domain.SubscriberRepo
	close       func()
}

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return &stores{
			shifts:      postgres.NewShiftRepo(pool),
			settings:    postgres.NewSettingsRepo(pool),
			subscribers: postgres.NewSubscriberRepo(pool),
			close:       pool.Close,
		}, nil
	}
	db, err := sqlite.Open(ctx, cfg.SQLitePath)
	if err != nil {
		return nil, err
	}
	return &stores{
		shifts:      sqlite.NewSqliteShiftRepo(db),
		settings:    sqlite.NewSqliteSettingsRepo(db),
		subscribers: sqlite.NewSqliteSubscriberRepo(db),
		close:       func() { _ = db.Close() },
	}, nil
}

func main() {
	opts := logger.FromEnv()
	opts.Service = "shift-tracker"
	logger.Init(opts)
	log := logger.Get()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer st.close()

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	shifts := service.NewShiftService(st.shifts)
	ledger := service.NewLedger(st.shifts)
	agg := service.NewAggregator(cfg.WeekStart, cfg.Location)

	api := &http.API{
		Shifts:    shifts,
		Ledger:    ledger,
		Settings:  service.NewSettingsService(st.settings, cfg.DefaultHourlyRate),
		Agg:       agg,
		Feed:      ics.NewBuilder(),
		Async:     service.NewAsyncService(pool),
		FeedToken: cfg.FeedToken,
	}
	srv := http.NewServer(cfg.ListenAddr, api.Routes(cfg.CORSOrigins))
	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	if cfg.TelegramToken != "" {
		bot, err := telebot.NewBot(telebot.Settings{
			Token:  cfg.TelegramToken,
			Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
			OnError: func(err error, c telebot.Context) {
				logger.Named("telegram").Error().Err(err).Msg("bot error")
			},
		})
		if err != nil {
			log.Fatal().Err(err).Msg("start telegram bot")
		}
		h := &telegram.Handler{
			Bot:         bot,
			Shifts:      shifts,
			Ledger:      ledger,
			Subscribers: service.NewSubscriberService(st.subscribers),
			Agg:         agg,
			Calendar:    &calendar.CalendarController{WeekStart: cfg.WeekStart, Location: cfg.Location},
			Chats:       cfg.TelegramChats,
			Ctx:         ctx,
		}
		h.Register()
		go bot.Start()
		defer bot.Stop()

		if cfg.ReminderCron != "" {
			rem := reminder.New(st.shifts, st.subscribers, telegram.Notifier{Bot: bot}, cfg.Location)
			if err := rem.Start(cfg.ReminderCron); err != nil {
				log.Fatal().Err(err).Msg("schedule reminders")
			}
			defer rem.Stop()
		}
		log.Info().Msg("telegram bot started")
	}

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("http server stopped")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	log.Info().Msg("stopped")
}
