package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"pulseboard/internal/cache"
	"pulseboard/internal/config"
	"pulseboard/internal/repository"
	"pulseboard/internal/service"
	"pulseboard/internal/transport/rest"
	"pulseboard/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration:", err)
	}

	// MongoDB connection
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoClient.Disconnect(ctx)

	// Ping MongoDB
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := mongoClient.Ping(pingCtx, nil); err != nil {
		log.Fatal("Failed to ping MongoDB:", err)
	}
	log.Println("Connected to MongoDB")

	db := mongoClient.Database(cfg.Mongo.Database)

	// Redis connection
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
	})
	defer rdb.Close()

	// Ping Redis
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatal("Failed to ping Redis:", err)
	}
	log.Println("Connected to Redis")

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize repositories
	surveyRepo := repository.NewSurveyRepo(db)
	responseRepo := repository.NewResponseRepo(db)
	questionRepo := repository.NewQuestionRepo(db)
	reportRepo := repository.NewReportRepo(db)

	if err := responseRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal("Failed to create response indexes:", err)
	}

	// Initialize caches
	analyticsCache := cache.NewAnalyticsCache(rdb, cfg.AnalyticsCacheTTL)
	respondentCache := cache.NewRespondentCache(rdb)
	participation := cache.NewParticipationCache(rdb)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	analyticsSvc := service.NewAnalyticsService(surveyRepo, responseRepo, analyticsCache, respondentCache, participation, cfg.MinSegmentSize)
	reportSvc := service.NewReportService(reportRepo, analyticsSvc)
	surveySvc := service.NewSurveyService(surveyRepo, responseRepo, reportSvc, analyticsSvc)
	bankSvc := service.NewQuestionBankService(questionRepo)
	responseSvc := service.NewResponseService(surveyRepo, responseRepo, respondentCache, participation, analyticsSvc, authSvc)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	surveySvc.SetBroadcaster(wsHub)
	responseSvc.SetBroadcaster(wsHub)

	// Create router with container
	container := &rest.Container{
		AuthService:         authSvc,
		SurveyService:       surveySvc,
		QuestionBankService: bankSvc,
		ResponseService:     responseSvc,
		AnalyticsService:    analyticsSvc,
		ReportService:       reportSvc,
		WSHub:               wsHub,
		CORS:                cfg.CORS,
	}

	router := rest.NewRouter(container)

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.Port)
		log.Printf("Admin auth: username=%s", cfg.Auth.AdminUsername)
		log.Printf("Segment anonymity threshold: %d", cfg.MinSegmentSize)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  POST/GET /v1/surveys")
		log.Println("  POST /v1/surveys/{id}/open, /close")
		log.Println("  POST/GET /v1/questions")
		log.Println("  POST /v1/surveys/{id}/join")
		log.Println("  GET  /v1/surveys/{id}/questions")
		log.Println("  POST /v1/surveys/{id}/responses")
		log.Println("  GET  /v1/surveys/{id}/analytics[/segments|/issues|/trend|/participation]")
		log.Println("  GET  /v1/reports/{id}/snapshot")
		log.Println("  WS  /v1/ws/surveys/{id}/dashboard")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
