// Package factory builds the configured platform backends.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hirosato/ynab-mcp/internal/common/config"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/events"
	"github.com/hirosato/ynab-mcp/internal/platform/amqp"
	dynamoClient "github.com/hirosato/ynab-mcp/internal/platform/dynamodb/client"
	dynamodbRepository "github.com/hirosato/ynab-mcp/internal/platform/dynamodb/repository"
	"github.com/hirosato/ynab-mcp/internal/platform/filestore"
	"github.com/hirosato/ynab-mcp/internal/platform/secrets"
	"github.com/hirosato/ynab-mcp/internal/platform/sqlite"
	"github.com/hirosato/ynab-mcp/internal/platform/ynabapi"
)

// CloseFunc releases whatever a constructor opened.
type CloseFunc func() error

func noClose() error { return nil }

// NewMappingRepository creates the learning store for cfg.CategorizerBackend.
func NewMappingRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (categorizer.Repository, CloseFunc, error) {
	switch cfg.CategorizerBackend {
	case config.BackendFile, "":
		logger.Info("Using file categorizer store", "path", cfg.CategorizerPath)
		return filestore.NewMappingRepository(cfg.CategorizerPath), noClose, nil
	case config.BackendSQLite:
		repo, err := sqlite.NewMappingRepository(cfg.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		logger.Info("Using sqlite categorizer store", "path", cfg.SQLitePath)
		return repo, repo.Close, nil
	case config.BackendDynamoDB:
		client, err := dynamoClient.NewDynamoDBClient(ctx, cfg.AWSRegion, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize DynamoDB client: %w", err)
		}
		logger.Info("Using dynamodb categorizer store", "table", cfg.DynamoDBTableName)
		return dynamodbRepository.NewDynamoDBMappingRepository(client, cfg.DynamoDBTableName, logger), noClose, nil
	default:
		return nil, nil, fmt.Errorf("unknown categorizer backend %q", cfg.CategorizerBackend)
	}
}

// NewPublisher connects to AMQP when a URL is configured. Without a URL, or
// when the broker is unreachable, events are dropped.
func NewPublisher(cfg *config.Config, logger *slog.Logger) events.Publisher {
	if cfg.AMQPURL == "" {
		return events.NopPublisher{}
	}
	p, err := amqp.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPRoutingKey, logger)
	if err != nil {
		logger.Warn("Failed to initialize AMQP publisher, continuing without change events", "error", err)
		return events.NopPublisher{}
	}
	logger.Info("Initialized AMQP publisher", "exchange", cfg.AMQPExchange, "routing_key", cfg.AMQPRoutingKey)
	return p
}

// NewYNABClient resolves the API token and the default budget and returns a
// client ready to share.
func NewYNABClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*ynabapi.Client, error) {
	token := cfg.YNABToken
	if token == "" {
		provider, err := secrets.NewTokenProvider(ctx, cfg.AWSRegion, cfg.YNABTokenSecretID, logger)
		if err != nil {
			return nil, err
		}
		if token, err = provider.Token(ctx); err != nil {
			return nil, fmt.Errorf("failed to read YNAB token: %w", err)
		}
	}

	client := ynabapi.New(ynabapi.Config{
		Token:    token,
		BaseURL:  cfg.YNABBaseURL,
		BudgetID: cfg.YNABBudgetID,
		Timeout:  cfg.YNABTimeout,
	}, logger)

	if _, err := client.ResolveDefaultBudget(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to resolve default budget: %w", err)
	}
	return client, nil
}
