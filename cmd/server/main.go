package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-order-service/config"
	"video-order-service/internal/api"
	"video-order-service/internal/broker"
	"video-order-service/internal/payment"
	"video-order-service/internal/redisclient"
	"video-order-service/internal/service"
	"video-order-service/internal/store"
	"video-order-service/internal/util"
	"video-order-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting video order service")

	tp, err := util.InitTracer("video-order-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	db, err := store.NewStore(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Database connected")

	redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Redis connected")

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder)
	defer producer.Close()
	log.Println("Kafka producer initialized")

	eventPublisher := broker.NewEventPublisher(producer)

	orderService := service.NewOrderService(db, redisClient, eventPublisher)
	galleryService := service.NewGalleryService(db)
	sessionManager := service.NewSessionManager(redisClient, cfg.Business.DraftSessionTTL)
	paymentValidator := payment.NewValidator(cfg.Business.PaymentConfirmDelay, nil, eventPublisher)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	generationConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, cfg.Kafka.ConsumerGroup)
	generationWorker := worker.NewGenerationWorker(generationConsumer, eventPublisher, cfg.Business.GenerationTick)
	go func() {
		if err := generationWorker.Start(workerCtx); err != nil {
			log.Printf("Generation worker error: %v", err)
		}
	}()

	statusConsumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicOrder, "status-worker-group")
	statusWorker := worker.NewStatusWorker(statusConsumer, orderService)
	go func() {
		if err := statusWorker.Start(workerCtx); err != nil {
			log.Printf("Status worker error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(sessionManager, paymentValidator, orderService, galleryService)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	generationWorker.Stop()
	statusWorker.Stop()

	log.Println("Server exited")
}
