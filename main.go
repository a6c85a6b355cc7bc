package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/Ananth-NQI/wander-backend/database"
	"github.com/Ananth-NQI/wander-backend/internal/config"
	"github.com/Ananth-NQI/wander-backend/internal/handlers"
	"github.com/Ananth-NQI/wander-backend/internal/routes"
	"github.com/Ananth-NQI/wander-backend/internal/services"
	"github.com/Ananth-NQI/wander-backend/internal/storage"
)

const version = "1.0.0"

func main() {
	// Load .env file for local development
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	ctx := context.Background()

	// Initialize storage
	store, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage: ", err)
	}

	// Optional ticket archive
	var archive handlers.TicketArchiver
	if cfg.TicketBucket != "" {
		awsCfg, err := database.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			log.Fatal("Failed to load AWS config: ", err)
		}
		archive = services.NewTicketArchive(database.NewS3Client(awsCfg), cfg.TicketBucket)
		log.Printf("✅ Ticket archive enabled (s3://%s)", cfg.TicketBucket)
	}

	reports := services.NewReportCache()
	analyzer := services.NewAnalysisService(cfg.WebhookURL, cfg.AnalysisTimeout)
	policy := handlers.EmailPolicy{
		RejectMissing: cfg.MissingEmailPolicy == config.EmailPolicyReject,
		DefaultEmail:  cfg.DefaultEmail,
	}

	log.Println("✅ All services initialized")

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName:     "Wander Backend v" + version,
		BodyLimit:   cfg.BodyLimit(),
		Immutable:   true,
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
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
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	routes.SetupRoutes(app,
		handlers.NewJourneyHandler(store, analyzer, reports, archive, policy),
		handlers.NewCallbackHandler(store, reports, cfg.DefaultEmail),
		handlers.NewReportHandler(reports),
		handlers.NewHealthHandler(version, cfg.StoreDriver, store),
	)

	// Frontend assets
	app.Static("/", cfg.StaticDir)

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		_ = app.Shutdown()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(shutdownCtx); err != nil {
			log.Printf("⚠️  Failed to close storage: %v", err)
		}
	}()

	// Start server
	log.Println("========================================")
	log.Printf("🚀 Wander Backend starting on http://localhost:%s", cfg.Port)
	log.Printf("📊 Storage: %s", cfg.StoreDriver)
	log.Printf("🔗 n8n webhook: %s", cfg.WebhookURL)
	log.Printf("📧 Missing email policy: %s", cfg.MissingEmailPolicy)
	log.Println("========================================")

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

// openStore connects the configured booking store. The connection is made
// once; there is no reconnection beyond what the drivers do themselves.
func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		log.Println("⚠️  Using in-memory storage (not for production!)")
		return storage.NewMemoryStore(), nil

	case config.DriverPostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		log.Println("✅ Using PostgreSQL database storage")
		return storage.NewDatabaseStore(db), nil

	case config.DriverDynamo:
		awsCfg, err := database.LoadAWSConfig(ctx, cfg.AWSRegion)
		if err != nil {
			return nil, err
		}
		client := database.NewDynamoClient(awsCfg, cfg.DynamoEndpoint)
		if err := storage.EnsureDynamoTable(ctx, client, cfg.DynamoTable); err != nil {
			return nil, err
		}
		log.Printf("✅ Using DynamoDB table %s", cfg.DynamoTable)
		return storage.NewDynamoStore(client, cfg.DynamoTable), nil

	default:
		coll, err := database.ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
		return storage.NewMongoStore(ctx, coll)
	}
}
