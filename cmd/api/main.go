package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/roasthouse/checkout-api/internal/cart"
	"github.com/roasthouse/checkout-api/internal/catalog"
	"github.com/roasthouse/checkout-api/internal/checkout"
	"github.com/roasthouse/checkout-api/internal/config"
	"github.com/roasthouse/checkout-api/internal/httpx"
	kafkax "github.com/roasthouse/checkout-api/internal/kafka"
	"github.com/roasthouse/checkout-api/internal/ledger"
	"github.com/roasthouse/checkout-api/internal/logging"
	"github.com/roasthouse/checkout-api/internal/orderevents"
	"github.com/roasthouse/checkout-api/internal/payment"
	"github.com/roasthouse/checkout-api/internal/postgres"
	"github.com/roasthouse/checkout-api/internal/redisx"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.ServiceName)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	if err := postgres.Migrate(cfg.DatabaseURL); err != nil {
		log.Error("migrate", "err", err)
		os.Exit(1)
	}
	db, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producer for completed-order events
	prod := kafkax.NewProducer(cfg.KafkaBrokers, orderevents.TopicOrderCompleted, 1024, log)
	prod.Start(ctx)

	// Stores and services
	carts := &cart.FallbackStore{
		Primary:   &cart.RedisStore{Client: rdb, TTL: cfg.CartTTL},
		Secondary: cart.NewMemoryStore(),
		Log:       log,
	}
	reader := &catalog.Reader{DB: db}
	cartSvc := &cart.Service{Store: carts, Catalog: reader}
	checkoutSvc := &checkout.Service{
		Catalog:  reader,
		Carts:    carts,
		Ledger:   &ledger.Repo{DB: db},
		Gateway:  payment.NewStripeGateway(cfg.StripeSecretKey),
		Lock:     &redisx.SubmitLock{Client: rdb},
		Events:   &orderevents.Publisher{Producer: prod, Service: cfg.ServiceName},
		Currency: cfg.Currency,
		Log:      log,
	}

	router := httpx.NewRouter(log)
	h := &httpx.Handler{
		Carts:    cartSvc,
		Checkout: checkoutSvc,
		Products: reader,
		Ready:    db.Ping,
	}
	h.Register(router)

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	prod.Close()
	cancel()
	prod.WaitClosed()
}
