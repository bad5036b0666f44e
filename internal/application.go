package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-stepback/internal/config"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/repository"
	"github.com/rocketscienceinc/tictactoe-stepback/internal/session"
	"github.com/rocketscienceinc/tictactoe-stepback/transport/rest"
	"github.com/rocketscienceinc/tictactoe-stepback/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	roundRepo, closeRepo, err := newRoundRepository(ctx, log, conf.Redis)
	if err != nil {
		return err
	}
	defer closeRepo()

	group, groupCtx := errgroup.WithContext(ctx)

	journal := session.NopJournal()
	if roundRepo != nil {
		writer := session.NewJournalWriter(logger, roundRepo, conf.Redis.Timeout)
		journal = writer

		group.Go(func() error {
			return writer.Run(groupCtx)
		})
	}

	coordinator := session.NewCoordinator(logger, journal)

	var rounds rest.RoundReader = coordinator
	if roundRepo != nil {
		rounds = roundRepo
	}

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)

		if httpErr := rest.New(logger, coordinator, rounds).Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}

		return nil
	})

	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort, "path", conf.SocketPath)

		wsServer := websocket.New(logger, coordinator, conf.SocketPath)
		if wsErr := wsServer.Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}

		return nil
	})

	go func() {
		<-groupCtx.Done()
		log.Info("Application context canceled, shutting down")
	}()

	return group.Wait()
}

// newRoundRepository - connects the redis round journal when enabled. Returns nil when it is disabled.
func newRoundRepository(ctx context.Context, log *slog.Logger, conf config.Redis) (*repository.RoundRepository, func(), error) {
	if !conf.Enabled {
		log.Info("Round journal disabled")
		return nil, func() {}, nil
	}

	addr := conf.GetRedisAddr()
	if conf.Host == "" {
		return nil, nil, ErrAddrNotFound
	}

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		DialTimeout:  conf.Timeout,
		ReadTimeout:  conf.Timeout,
		WriteTimeout: conf.Timeout,
		MaxRetries:   1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, conf.Timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	log.Info("Round journal enabled", "addr", addr, "key", conf.JournalKey)

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRoundRepository(client, conf.JournalKey), closeFn, nil
}
