package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	envconfig "github.com/hirosato/ynab-mcp/internal/common/config"
	"github.com/hirosato/ynab-mcp/internal/common/utils"
	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/domain/ynab"
	"github.com/hirosato/ynab-mcp/internal/platform/factory"
)

const usage = `usage: operation <command>

commands:
  list-mappings              print the learned payee -> category mappings
  clear-mappings             forget every learned mapping
  learn-history [since-date] learn mappings from transaction history (YYYY-MM-DD)
  resolve-budget             print the budget id the server would use`

// Example: CATEGORIZER_BACKEND=sqlite go run ./cmd/operation learn-history 2025-01-01
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.LogLevel}))
	ctx := context.Background()

	switch os.Args[1] {
	case "list-mappings":
		listMappings(ctx, config, logger)
	case "clear-mappings":
		clearMappings(ctx, config, logger)
	case "learn-history":
		since := ""
		if len(os.Args) > 2 {
			since = os.Args[2]
			if err := utils.ValidateISODate(since); err != nil {
				log.Fatalf("Invalid since-date: %v", err)
			}
		}
		learnHistory(ctx, config, logger, since)
	case "resolve-budget":
		resolveBudget(ctx, config, logger)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}
}

func openCategorizer(ctx context.Context, config *envconfig.Config, logger *slog.Logger) (*categorizer.Service, func() error) {
	repo, closeStore, err := factory.NewMappingRepository(ctx, config, logger)
	if err != nil {
		log.Fatalf("Failed to open categorizer store: %v", err)
	}
	return categorizer.NewService(ctx, repo, logger), closeStore
}

func listMappings(ctx context.Context, config *envconfig.Config, logger *slog.Logger) {
	svc, closeStore := openCategorizer(ctx, config, logger)
	defer closeStore()

	mappings := svc.Mappings()
	if len(mappings) == 0 {
		fmt.Println("No mappings learned yet.")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PAYEE\tCATEGORY\tCATEGORY ID\tCOUNT")
	for _, m := range mappings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", m.Payee, m.CategoryName, m.CategoryID, m.Count)
	}
	_ = w.Flush()
}

func clearMappings(ctx context.Context, config *envconfig.Config, logger *slog.Logger) {
	svc, closeStore := openCategorizer(ctx, config, logger)
	defer closeStore()

	n, err := svc.Clear(ctx)
	if err != nil {
		log.Fatalf("Failed to clear mappings: %v", err)
	}
	fmt.Printf("Cleared %d mappings.\n", n)
}

func learnHistory(ctx context.Context, config *envconfig.Config, logger *slog.Logger, since string) {
	client, err := factory.NewYNABClient(ctx, config, logger)
	if err != nil {
		log.Fatalf("Failed to initialize YNAB client: %v", err)
	}
	defer client.Close()

	svc, closeStore := openCategorizer(ctx, config, logger)
	defer closeStore()

	txns, err := client.GetTransactions(ctx, ynab.TransactionQuery{SinceDate: since})
	if err != nil {
		log.Fatalf("Failed to fetch transactions: %v", err)
	}
	observations := categorizer.ObservationsFrom(txns)
	if err := svc.Learn(ctx, observations); err != nil {
		log.Fatalf("Failed to save mappings: %v", err)
	}
	fmt.Printf("Learned from %d of %d transactions; %d mappings stored.\n", len(observations), len(txns), len(svc.Mappings()))
}

func resolveBudget(ctx context.Context, config *envconfig.Config, logger *slog.Logger) {
	client, err := factory.NewYNABClient(ctx, config, logger)
	if err != nil {
		log.Fatalf("Failed to initialize YNAB client: %v", err)
	}
	defer client.Close()
	fmt.Println(client.BudgetID())
}
