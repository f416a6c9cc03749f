package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Learning-store backends.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendDynamoDB = "dynamodb"
)

// Transports.
const (
	TransportStdio  = "stdio"
	TransportLambda = "lambda"
)

// Config represents the application configuration
// This struct contains all configuration parameters for the application
type Config struct {
	// YNAB API access
	YNABToken         string
	YNABTokenSecretID string
	YNABBudgetID      string
	YNABBaseURL       string
	YNABTimeout       time.Duration

	// Learning store
	CategorizerBackend string
	CategorizerPath    string
	SQLitePath         string
	DynamoDBTableName  string

	// AWS-specific configuration
	AWSRegion string

	// Change events, disabled when AMQPURL is empty
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string

	Transport    string
	MCPAuthToken string
	Environment  string
	LogLevel     slog.Level

	// Lambda detection flag (cached)
	isLambda bool
}

// LoadFromEnv loads the configuration from environment variables. A .env
// file in the working directory is read first when present.
func LoadFromEnv() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		YNABToken:          os.Getenv("YNAB_API_TOKEN"),
		YNABTokenSecretID:  os.Getenv("YNAB_API_TOKEN_SECRET_ID"),
		YNABBudgetID:       getenv("YNAB_BUDGET_ID", "default"),
		YNABBaseURL:        getenv("YNAB_BASE_URL", "https://api.ynab.com/v1"),
		CategorizerBackend: strings.ToLower(getenv("CATEGORIZER_BACKEND", BackendFile)),
		DynamoDBTableName:  os.Getenv("DYNAMODB_TABLE_NAME"),
		AWSRegion:          getenv("AWS_REGION", "us-east-1"),
		AMQPURL:            os.Getenv("AMQP_URL"),
		AMQPExchange:       getenv("AMQP_EXCHANGE", "ynab.events"),
		AMQPRoutingKey:     getenv("AMQP_ROUTING_KEY", "ledger.changed"),
		MCPAuthToken:       os.Getenv("MCP_AUTH_TOKEN"),
		Environment:        getenv("ENVIRONMENT", "dev"),
	}

	if cfg.YNABToken == "" && cfg.YNABTokenSecretID == "" {
		return nil, errors.New("YNAB_API_TOKEN or YNAB_API_TOKEN_SECRET_ID environment variable is required")
	}

	timeout, err := time.ParseDuration(getenv("YNAB_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid YNAB_TIMEOUT: %w", err)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid YNAB_TIMEOUT: must be positive")
	}
	cfg.YNABTimeout = timeout

	// Check if running in Lambda
	cfg.isLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	defaultTransport := TransportStdio
	if cfg.isLambda {
		defaultTransport = TransportLambda
	}
	cfg.Transport = strings.ToLower(getenv("MCP_TRANSPORT", defaultTransport))
	if cfg.Transport != TransportStdio && cfg.Transport != TransportLambda {
		return nil, fmt.Errorf("invalid MCP_TRANSPORT %q: must be stdio or lambda", cfg.Transport)
	}

	home, _ := os.UserHomeDir()
	dataDir := filepath.Join(home, ".ynab-assistant")
	cfg.CategorizerPath = getenv("CATEGORIZER_PATH", filepath.Join(dataDir, "categorizer.json"))
	cfg.SQLitePath = getenv("SQLITE_PATH", filepath.Join(dataDir, "categorizer.db"))

	switch cfg.CategorizerBackend {
	case BackendFile, BackendSQLite:
	case BackendDynamoDB:
		if cfg.DynamoDBTableName == "" {
			return nil, errors.New("DYNAMODB_TABLE_NAME environment variable is required for the dynamodb backend")
		}
	default:
		return nil, fmt.Errorf("invalid CATEGORIZER_BACKEND %q: must be file, sqlite or dynamodb", cfg.CategorizerBackend)
	}

	level, err := parseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// IsDev reports whether request and response bodies may be logged.
func (c *Config) IsDev() bool {
	return c.Environment == "dev"
}

// IsLambda returns true if the application is running in AWS Lambda
func (c *Config) IsLambda() bool {
	return c.isLambda
}
