package main

import (
	"context"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/roasthouse/checkout-api/internal/config"
	kafkax "github.com/roasthouse/checkout-api/internal/kafka"
	"github.com/roasthouse/checkout-api/internal/logging"
	"github.com/roasthouse/checkout-api/internal/notify"
	"github.com/roasthouse/checkout-api/internal/orderevents"
	"github.com/roasthouse/checkout-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.ServiceName+"-notifier")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	svc := &notify.Service{
		Dedup: &redisx.Dedup{Client: rdb, Service: "notifier"},
		Log:   log,
	}

	group := getenv("NOTIFIER_GROUP", "receipt-notifier")
	workers := mustAtoi(os.Getenv("NOTIFIER_WORKERS"), 4)
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, orderevents.TopicOrderCompleted, workers, log)

	go func() {
		log.Info("notifier consumer started",
			"group", group, "topic", orderevents.TopicOrderCompleted, "workers", workers)
		if err := cons.Start(ctx, svc.HandleOrderCompleted); err != nil {
			log.Error("consumer exit", "err", err)
			cancel()
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
	case <-ctx.Done():
	}
	log.Info("shutting down notifier...")
	cancel()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func mustAtoi(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil || i <= 0 {
		return def
	}
	return i
}
