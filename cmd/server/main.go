package main

import (
	"os"
	"os/signal"
	"syscall"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/handlers"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/queue"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/services"
	"eventhub-backend/pkg/database"
	"eventhub-backend/pkg/logger"
	"eventhub-backend/pkg/redisstore"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Log.Warnf(".env file not found: %v", err)
	}

	cfg, err := config.NewConfigFromEnv()
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Log.Fatalf("Database connection error: %v", err)
	}
	if err := repositories.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("Migration error: %v", err)
	}
	repo := repositories.NewRepository(db)

	publisher := queue.NewPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	defer publisher.Close()

	// Limiter counters live in Redis when it is reachable, in memory otherwise.
	var limitStorage fiber.Storage
	if client := redisstore.NewClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); client != nil {
		store := redisstore.New(client, "eventhub:limit:")
		defer store.Close()
		limitStorage = store
		logger.WithFields(logrus.Fields{"addr": cfg.RedisAddr}).Info("rate limiting backed by redis")
	}

	bank := services.NewHTTPBankGateway(cfg.BankURL, cfg.BankTimeout)

	authSvc := services.NewAuthService(repo, cfg)
	userSvc := services.NewUserService(repo, cfg, publisher, bank)
	eventSvc := services.NewEventService(repo, cfg)
	organizerSvc := services.NewOrganizerService(repo, cfg)
	adminSvc := services.NewAdminService(repo, cfg, publisher)

	handler := handlers.NewHandler(authSvc, userSvc, eventSvc, organizerSvc, adminSvc, cfg, limitStorage)

	app := fiber.New(fiber.Config{
		AppName:      "EventHub API",
		ErrorHandler: handlers.ErrorHandler,
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
	})

	// Global middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(compress.New())

	api := app.Group("/api")
	handler.RegisterRoutes(api)

	go func() {
		addr := ":" + cfg.Port
		logger.WithFields(logrus.Fields{"addr": addr, "env": cfg.Env}).Info("server starting")
		if err := app.Listen(addr); err != nil {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		logger.Log.Errorf("Server shutdown error: %v", err)
	}
	logger.Log.Info("Server stopped gracefully")
}
