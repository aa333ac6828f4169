package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/electromart/electromart-backend/database"
	"github.com/electromart/electromart-backend/internal/config"
	"github.com/electromart/electromart-backend/internal/handlers"
	"github.com/electromart/electromart-backend/internal/logger"
	"github.com/electromart/electromart-backend/internal/middleware"
	"github.com/electromart/electromart-backend/internal/models"
	"github.com/electromart/electromart-backend/internal/routes"
	"github.com/electromart/electromart-backend/internal/services"
	"github.com/electromart/electromart-backend/internal/storage"
)

func main() {
	log := logger.New()

	if err := godotenv.Load(".env"); err != nil {
		log.Info("No .env file found - using environment variables")
	}

	cfg := config.Load()

	// Storage for the outbound message audit log
	var store storage.Store
	if cfg.UseMemoryStore {
		log.Warn("Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Info("Connecting to PostgreSQL database...")
		database.Connect()

		if err := database.DB.AutoMigrate(&models.MessageLog{}); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		store = storage.NewDatabaseStore(database.DB)
		log.Info("Using PostgreSQL database storage")
	}

	// Outbound gateway
	var gateway services.Gateway
	switch cfg.Gateway {
	case config.GatewayCloud:
		gateway = services.NewCloudAPIGateway(cfg.WhatsAppToken, cfg.PhoneNumberID, cfg.GraphBaseURL, log)
		log.Info("Using WhatsApp Cloud API gateway")
	case config.GatewayTwilio:
		tw, err := services.NewTwilioGateway(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFrom, log)
		if err != nil {
			log.Fatalf("Failed to initialize Twilio gateway: %v", err)
		}
		gateway = tw
		log.Info("Using Twilio gateway")
	default:
		log.Warn("Using mock gateway - messages are recorded, not delivered")
		gateway = services.NewMockGateway(log)
	}
	gateway = services.NewAuditedGateway(gateway, store, log)

	// NLP fallback classifier
	var classifier services.Classifier
	if cfg.OpenAIKey != "" {
		classifier = services.NewOpenAIClassifier(cfg.OpenAIKey, cfg.OpenAIModel)
		log.Info("NLP fallback classifier enabled")
	} else {
		log.Warn("OPENAI_API_KEY not set - NLP fallback disabled")
	}

	// Conversation engine
	sessions := services.NewSessionStore()
	resolver := services.NewIntentResolver(models.ManualRules, classifier, log)
	dispatcher := services.NewDispatcher(sessions, resolver, gateway, cfg.MediaDownloadDir, log)

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "ElectroMart Bot v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(middleware.NgrokHeaders())
	app.Use(middleware.RequestLogger(log))

	webhookHandler := handlers.NewWebhookHandler(dispatcher, cfg.VerifyToken, log)
	sendHandler := handlers.NewSendHandler(gateway, validator.New(), log)
	healthHandler := handlers.NewHealthHandler(sessions, store)

	routes.SetupRoutes(app, webhookHandler, sendHandler, healthHandler)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	log.Infof("🚀 ElectroMart bot starting on port %s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
