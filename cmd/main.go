package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/secretChao/ws-chatroom/internal/api"
	"github.com/secretChao/ws-chatroom/internal/config"
	"github.com/secretChao/ws-chatroom/internal/events"
	"github.com/secretChao/ws-chatroom/internal/hub"
	"github.com/secretChao/ws-chatroom/internal/identity"
	"github.com/secretChao/ws-chatroom/internal/logging"
	"github.com/secretChao/ws-chatroom/internal/metrics"
	"github.com/secretChao/ws-chatroom/internal/presence"
	"github.com/secretChao/ws-chatroom/internal/presencemirror"
	"github.com/secretChao/ws-chatroom/internal/relay"
	"github.com/secretChao/ws-chatroom/internal/rooms"
	"github.com/secretChao/ws-chatroom/internal/ws"
)

func main() {
	cfgPath := os.Getenv("CONFIG_FILE")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load: %v", err)
	}

	zl, err := logging.New(cfg.App.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zl.Sugar()

	metrics.Register()

	var mirror *presencemirror.Mirror
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		mirror = presencemirror.New(rdb, cfg.Redis.Prefix, cfg.MirrorTTL)
	}

	var producer *events.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = events.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}
	defer func() { _ = producer.Close() }()

	identities := identity.NewStore()
	catalog := rooms.NewCatalog(cfg.Rooms)
	h := hub.New(logger)
	publisher := presence.NewPublisher(h, identities, logger)
	ctrl := relay.NewController(h, identities, publisher, mirror, producer, logger)
	handler := ws.NewHandler(ctrl, cfg, logger)
	app := api.NewServer(catalog, identities, handler, logger)

	errs := make(chan error, 1)
	go func() {
		addr := ":" + strconv.Itoa(cfg.App.Port)
		logger.Infow("starting chatroom relay", "addr", addr, "rooms", cfg.Rooms)
		errs <- app.Listen(addr)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case e := <-errs:
		logger.Fatalw("server error", "error", e)
	case s := <-sig:
		logger.Infow("signal received", "signal", s.String())
	}

	if err := app.Shutdown(); err != nil {
		logger.Errorw("shutdown", "error", err)
	}
	logger.Info("shutting down")
}
