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

	"exhibition-service/config"
	"exhibition-service/internal/api"
	"exhibition-service/internal/broker"
	"exhibition-service/internal/service"
	"exhibition-service/internal/store"
	"exhibition-service/internal/util"
	"exhibition-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting exhibition service")

	tp, err := util.InitTracer("exhibition-service", cfg.Observ.JaegerEndpoint)
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

	db, err := store.New(cfg.Store.Backend, cfg.Store.File)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	log.Printf("Store opened: backend=%s", cfg.Store.Backend)

	var producer *broker.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		producer = broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicApprovals)
		defer producer.Close()
		log.Println("Kafka producer initialized")
	} else {
		log.Println("Kafka disabled: no brokers configured")
	}
	eventPublisher := broker.NewEventPublisher(producer)

	catalogService := service.NewCatalogService(db)
	exhibitionService := service.NewExhibitionService(db, eventPublisher)
	productListService := service.NewProductListService(db, eventPublisher)
	orderService := service.NewOrderService(db)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	stockMonitor := worker.NewStockMonitor(db, time.Duration(cfg.Worker.StockMonitorIntervalSeconds)*time.Second)
	go func() {
		if err := stockMonitor.Start(workerCtx); err != nil && err != context.Canceled {
			log.Printf("Stock monitor error: %v", err)
		}
	}()

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Server.UploadDir != "" {
		if err := os.MkdirAll(cfg.Server.UploadDir, 0o755); err != nil {
			log.Fatalf("Failed to create upload dir: %v", err)
		}
	}

	router := gin.Default()
	handler := api.NewHandler(catalogService, exhibitionService, productListService, orderService, cfg.Server.UploadDir)
	handler.SetupRoutes(router)
	if cfg.Server.UploadDir != "" {
		router.Static("/uploads", cfg.Server.UploadDir)
	}

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
	stockMonitor.Stop()

	log.Println("Server exited")
}
