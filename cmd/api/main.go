package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	redisclient "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	mongoadapter "github.com/marquee-live/storefront/internal/adapters/mongo"
	"github.com/marquee-live/storefront/internal/adapters/postgres"
	"github.com/marquee-live/storefront/internal/adapters/rabbit"
	redisadapter "github.com/marquee-live/storefront/internal/adapters/redis"
	"github.com/marquee-live/storefront/internal/checkout"
	"github.com/marquee-live/storefront/internal/config"
	httphandler "github.com/marquee-live/storefront/internal/http"
	"github.com/marquee-live/storefront/internal/idempotency"
	"github.com/marquee-live/storefront/internal/observability"
	"github.com/marquee-live/storefront/internal/rateLimit"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	shutdownOtel, err := observability.SetupOTel(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to setup otel: %v", err)
	}
	defer shutdownOtel()

	logger := observability.NewLogger()

	pool, err := pgxpool.New(context.Background(), cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	repo := postgres.NewRepository(pool)

	mongoClient, err := mongo.Connect(context.Background(), options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer mongoClient.Disconnect(context.Background())
	audit := mongoadapter.NewAuditLogger(mongoClient.Database("storefront"), logger)

	redisClient := redisclient.NewClient(&redisclient.Options{Addr: cfg.RedisAddr})
	redisCache := redisadapter.NewCache(redisClient)
	coupons := redisadapter.NewCouponStore(redisClient)
	redisIdemp := redisadapter.NewIdempotency(redisClient)
	idemp := idempotency.NewIdempotency(redisIdemp, cfg.IdempotencyTTL)
	rl := rateLimit.NewRateLimiter(redisCache)

	rabbitConn, err := amqp.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to rabbitmq: %v", err)
	}
	defer rabbitConn.Close()
	if _, err := rabbit.NewPublisher(rabbitConn); err != nil {
		log.Fatalf("failed to declare events exchange: %v", err)
	}

	co := checkout.NewService(repo, coupons, audit, logger, checkout.Rates{
		TicketTaxService: cfg.TaxServiceRate,
		MerchTax:         cfg.MerchTaxRate,
		ShippingFee:      cfg.ShippingFee,
	})

	handlers := httphandler.NewHandlers(cfg, repo, repo, repo, co, idemp, logger)
	admin := httphandler.NewAdminHandlers(repo, coupons, audit, logger)

	r := httphandler.SetupRouter(handlers, admin, logger, rl, idemp)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		logger.Info("Storefront API listening on ", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}
	logger.Info("Server exiting")
}
