package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverDynamo   = "dynamodb"
)

// Missing email policies for the submission endpoints
const (
	EmailPolicyReject  = "reject"
	EmailPolicyDefault = "default"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"3004"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// Storage
	StoreDriver     string `env:"STORE_DRIVER" envDefault:"mongo"`
	UseMemoryStore  bool   `env:"USE_MEMORY_STORE"`
	MongoURI        string `env:"MONGO_URI" envDefault:"mongodb://127.0.0.1:27017/wanderDB"`
	MongoDatabase   string `env:"MONGO_DATABASE" envDefault:"wanderDB"`
	MongoCollection string `env:"MONGO_COLLECTION" envDefault:"bookings"`
	DatabaseURL     string `env:"DATABASE_URL" envDefault:"host=localhost user=postgres dbname=wander port=5432 sslmode=disable"`
	DynamoTable     string `env:"DYNAMODB_TABLE" envDefault:"bookings"`
	DynamoEndpoint  string `env:"DYNAMODB_ENDPOINT"`
	AWSRegion       string `env:"AWS_REGION" envDefault:"us-east-1"`

	// n8n workflow
	WebhookURL      string        `env:"N8N_WEBHOOK_URL" envDefault:"http://localhost:5678/webhook-test/travel-app"`
	AnalysisTimeout time.Duration `env:"ANALYSIS_TIMEOUT" envDefault:"0s"`

	// Submissions
	MissingEmailPolicy string `env:"MISSING_EMAIL_POLICY" envDefault:"reject"`
	DefaultEmail       string `env:"DEFAULT_EMAIL" envDefault:"guest@example.com"`
	BodyLimitMB        int    `env:"BODY_LIMIT_MB" envDefault:"50"`
	StaticDir          string `env:"STATIC_DIR" envDefault:"./public"`

	// Optional S3 bucket for uploaded tickets
	TicketBucket string `env:"TICKET_BUCKET"`
}

// LoadDotEnv loads .env for local development, falling back to the
// development environment file.
func LoadDotEnv() {
	if err := godotenv.Load(".env"); err != nil {
		if err := godotenv.Load("environments/.env.development"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}
}

// Load parses the environment into a Config and validates the enumerated settings.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.UseMemoryStore {
		cfg.StoreDriver = DriverMemory
	}

	switch cfg.StoreDriver {
	case DriverMemory, DriverPostgres, DriverMongo, DriverDynamo:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}

	switch cfg.MissingEmailPolicy {
	case EmailPolicyReject, EmailPolicyDefault:
	default:
		return nil, fmt.Errorf("unknown MISSING_EMAIL_POLICY %q", cfg.MissingEmailPolicy)
	}

	if cfg.BodyLimitMB <= 0 {
		return nil, fmt.Errorf("BODY_LIMIT_MB must be positive, got %d", cfg.BodyLimitMB)
	}

	return cfg, nil
}

// BodyLimit returns the request body limit in bytes.
func (c *Config) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}
