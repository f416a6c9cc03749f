package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/hirosato/ynab-mcp/internal/api/handlers"
	"github.com/hirosato/ynab-mcp/internal/api/mcp/prompts"
	"github.com/hirosato/ynab-mcp/internal/api/mcp/resources"
	"github.com/hirosato/ynab-mcp/internal/api/mcp/tools"
	"github.com/hirosato/ynab-mcp/internal/api/middleware"
	"github.com/hirosato/ynab-mcp/internal/api/stdio"
	envconfig "github.com/hirosato/ynab-mcp/internal/common/config"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
	"github.com/hirosato/ynab-mcp/internal/platform/factory"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Load configuration
	config, err := envconfig.LoadFromEnv()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stderr, nil)).Error("Failed to load configuration", "error", err)
		return 1
	}

	// stdout carries the protocol in stdio mode
	var logOut io.Writer = os.Stdout
	if config.Transport == envconfig.TransportStdio {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the YNAB client
	client, err := factory.NewYNABClient(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to initialize YNAB client", "error", err)
		return 1
	}
	defer client.Close()

	// Initialize the learning store
	mappingRepo, closeStore, err := factory.NewMappingRepository(ctx, config, logger)
	if err != nil {
		logger.Error("Failed to initialize categorizer store", "error", err)
		return 1
	}
	defer closeStore()
	categorizerService := categorizer.NewService(ctx, mappingRepo, logger)

	publisher := factory.NewPublisher(config, logger)
	defer publisher.Close()

	// Create MCP handler registry
	registry := mcp.NewHandlerRegistry()
	tools.Register(registry, tools.Deps{
		Repo:        client,
		Categorizer: categorizerService,
		Publisher:   publisher,
		Logger:      logger,
	})
	registry.RegisterResource(resources.NewAccountsResource(client))
	registry.RegisterResource(resources.NewMappingsResource(categorizerService))
	registry.RegisterPrompt(&prompts.MonthlyBudgetReviewPrompt{})
	registry.RegisterPrompt(&prompts.CategorizeInboxPrompt{})

	mcpService := mcp.NewService(logger, registry)
	logger.Info("MCP server starting",
		"transport", config.Transport,
		"budget_id", client.BudgetID(),
		"categorizer_backend", config.CategorizerBackend)

	if config.Transport == envconfig.TransportLambda {
		serveLambda(ctx, config, logger, mcpService)
		return 0
	}

	if err := stdio.NewServer(mcpService, logger).Serve(ctx, os.Stdin, os.Stdout); err != nil {
		logger.Error("stdio transport failed", "error", err)
		return 1
	}
	return 0
}

func serveLambda(ctx context.Context, config *envconfig.Config, logger *slog.Logger, service *mcp.Service) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		zapLogger = zap.NewNop()
	}
	defer func() { _ = zapLogger.Sync() }()

	handler := middleware.Chain(
		handlers.NewMCPHandler(service).Handle,
		middleware.NewRecoveryMiddleware(),
		middleware.NewLoggingMiddleware(config.IsDev()),
		middleware.NewAuthMiddleware(config.MCPAuthToken, zapLogger),
	)

	lambda.StartWithOptions(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler(ctx, logger, request)
	}, lambda.WithContext(ctx))
}
