package main

import (
	"context"
	"errors"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nettileffa/httpserver"
	"nettileffa/movie"
	"nettileffa/pkg/config"
	"nettileffa/pkg/logger"
	"nettileffa/pkg/sentry"
	"nettileffa/rabbitmq"
	"nettileffa/sqlstore"

	sentrygo "github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	if cfg.SentryDSN != "" {
		err := sentrygo.Init(sentrygo.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.AppEnv,
			AttachStacktrace: true,
		})
		if err != nil {
			return err
		}
		defer sentrygo.Flush(sentry.FlushTime)
	}

	db, err := sqlstore.NewConnection(sqlstore.FromConfig(cfg))
	if err != nil {
		return err
	}
	n, err := sqlstore.Migrate(db, cfg.DB.Driver)
	if err != nil {
		return err
	}
	log.Infow("database ready", "driver", cfg.DB.Driver, "migrations_applied", n)

	usecaseOpts := []movie.Option{movie.WithLogger(log)}
	if cfg.AMQP.URL != "" {
		publisher, err := rabbitmq.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			log.Warnw("movie events disabled", "error", err)
		} else {
			defer publisher.Close()
			usecaseOpts = append(usecaseOpts, movie.WithPublisher(publisher))
			log.Infow("publishing movie events", "exchange", cfg.AMQP.Exchange)
		}
	}

	serverOpts := []httpserver.Options{
		httpserver.WithConfig(cfg),
		httpserver.WithLogger(log),
		httpserver.WithMovieService(movie.NewUsecase(
			sqlstore.NewMovieRepository(db, sqlstore.WithLogger(log)),
			usecaseOpts...,
		)),
	}
	if cfg.Redis.Addr != "" && cfg.RateLimit > 0 {
		client, err := httpserver.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Warnw("redis unreachable, rate limiting in memory", "error", err)
		} else {
			defer client.Close()
			limit := int(math.Ceil(cfg.RateLimit))
			serverOpts = append(serverOpts, httpserver.WithRateLimiterStore(
				httpserver.NewRedisRateLimiterStore(client, limit, time.Second, log),
			))
		}
	}

	server, err := httpserver.New(serverOpts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infow("server started", "addr", server.Addr)
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
