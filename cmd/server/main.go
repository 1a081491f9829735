package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/food_order/internal/config"
	"github.com/Skotchmaster/food_order/internal/es"
	"github.com/Skotchmaster/food_order/internal/events"
	"github.com/Skotchmaster/food_order/internal/httpserver"
	"github.com/Skotchmaster/food_order/internal/notify"
	"github.com/Skotchmaster/food_order/internal/push"
	"github.com/Skotchmaster/food_order/internal/repo"
	"github.com/Skotchmaster/food_order/internal/scheduler"
	"github.com/Skotchmaster/food_order/internal/search"
	"github.com/Skotchmaster/food_order/internal/service"
	pkgconfig "github.com/Skotchmaster/food_order/pkg/config"
	"github.com/Skotchmaster/food_order/pkg/db"
	"github.com/Skotchmaster/food_order/pkg/logging"
	"github.com/Skotchmaster/food_order/pkg/metrics"
	reqlog "github.com/Skotchmaster/food_order/pkg/middleware/logging"
	metricsmw "github.com/Skotchmaster/food_order/pkg/middleware/metrics"
)

func main() {
	cfg := config.LoadConfig()
	pkgconfig.MustNonEmpty(cfg.Required())

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	decimal.MarshalJSONWithoutQuotes = true

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second)
	gdb, err := db.Open(startCtx, cfg.DatabaseURL)
	cancelStart()
	if err != nil {
		logger.Error("db_open_failed", "error", err)
		os.Exit(1)
	}
	if err := repo.Migrate(gdb); err != nil {
		logger.Error("db_migrate_failed", "error", err)
		os.Exit(1)
	}
	store := &repo.GormRepo{DB: gdb}

	serverMetrics := metrics.NewServerMetrics(cfg.ServiceName, prometheus.DefaultRegisterer)
	orderMetrics := metrics.NewOrderMetrics(cfg.ServiceName, prometheus.DefaultRegisterer)

	hub := push.NewHub(logger)

	var mailer notify.Mailer = notify.LogMailer{Log: logger}
	if cfg.SendGridAPIKey != "" {
		mailer = notify.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailTemplateID)
	} else {
		logger.Warn("sendgrid_disabled", "reason", "SENDGRID_API_KEY is empty")
	}
	queue := notify.NewQueue(cfg.NotifyQueue, mailer, logger, orderMetrics)
	queue.Start()

	var publishers []events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publishers = append(publishers, events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	if cfg.AMQPURL != "" {
		amqpPub, err := events.DialAMQP(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("amqp_disabled", "error", err)
		} else {
			publishers = append(publishers, amqpPub)
		}
	}
	bus := events.NewBus(hub, logger, publishers...)

	catalog := &service.CatalogService{Repo: store}
	if cfg.ESURL != "" {
		esClient, err := es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			logger.Warn("search_disabled", "error", err)
		} else {
			catalog.Index = search.NewIndexer(esClient, cfg.ESIndex)
		}
	}

	auth := &service.AuthService{Repo: store, JWTSecret: []byte(cfg.JWTSecret), TokenTTL: cfg.TokenTTL, Notifier: queue}
	orders := &service.OrderService{
		Repo:         store,
		Events:       bus,
		Notifier:     queue,
		Metrics:      orderMetrics,
		AdvanceAfter: cfg.AdvanceAfter,
	}

	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		created, err := auth.EnsureAdmin(context.Background(), cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			logger.Error("admin_seed_failed", "error", err)
			os.Exit(1)
		}
		logger.Info("admin_seed", "email", cfg.AdminEmail, "created", created)
	}

	sched, err := scheduler.New(logger)
	if err != nil {
		logger.Error("scheduler_init_failed", "error", err)
		os.Exit(1)
	}
	err = sched.Add(scheduler.Task{
		Name:     "advance_orders",
		Interval: cfg.AdvanceInterval,
		Run: func(ctx context.Context) error {
			n, err := orders.AdvanceDue(ctx)
			if n > 0 {
				logger.Info("orders_advanced", "count", n)
			}
			return err
		},
	})
	if err != nil {
		logger.Error("scheduler_add_failed", "task", "advance_orders", "error", err)
		os.Exit(1)
	}
	sched.Start()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = httpserver.ErrorHandler
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), echomw.CORS())
	e.Use(reqlog.RequestLogger(logger))
	e.Use(metricsmw.Record(serverMetrics))

	httpserver.Register(e, &httpserver.Deps{
		Auth:    &httpserver.AuthHTTP{Svc: auth},
		Users:   &httpserver.UserHTTP{Svc: &service.UserService{Repo: store}},
		Catalog: &httpserver.CatalogHTTP{Svc: catalog},
		Orders:  &httpserver.OrderHTTP{Svc: orders},

		DB:        gdb,
		Hub:       hub,
		JWTSecret: []byte(cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("http_listen", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	go func() {
		<-quit
		logger.Warn("force_exit")
		os.Exit(1)
	}()

	logger.Info("shutting_down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sched.Stop(); err != nil {
		logger.Error("scheduler_stop_error", "error", err)
	}
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server_shutdown_error", "error", err)
	}
	hub.Close()
	if err := queue.Close(ctx); err != nil {
		logger.Error("notify_queue_close_error", "error", err)
	}
	if err := bus.Close(ctx); err != nil {
		logger.Error("event_bus_close_error", "error", err)
	}
	if err := db.Close(gdb); err != nil {
		logger.Error("db_close_error", "error", err)
	}

	logger.Info("shutdown_complete")
}
