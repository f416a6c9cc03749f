package prompts

import (
	"context"
	"fmt"
	"strconv"

	"github.com/hirosato/ynab-mcp/internal/api/mcp/resources"
	"github.com/hirosato/ynab-mcp/internal/domain/mcp"
)

const defaultInboxBatch = 10

// CategorizeInboxPrompt works through uncategorized transactions using the
// learned payee mappings as a hint.
type CategorizeInboxPrompt struct{}

func (p *CategorizeInboxPrompt) GetName() string {
	return "categorize-inbox"
}

func (p *CategorizeInboxPrompt) GetDescription() string {
	return "Categorize uncategorized transactions with help from learned payee mappings"
}

func (p *CategorizeInboxPrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "batch_size",
			Description: "How many transactions to propose at once (default 10)",
			Required:    false,
		},
	}
}

func (p *CategorizeInboxPrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*mcp.GetPromptResult, error) {
	batch := defaultInboxBatch
	if raw, ok := arguments["batch_size"].(string); ok && raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			return nil, fmt.Errorf("batch_size must be a whole number from 1 to 100")
		}
		batch = n
	}

	messages := []mcp.PromptMessage{
		{
			Role: "user",
			Content: mcp.PromptContent{
				Type: "text",
				Text: fmt.Sprintf(`Help me clear out my uncategorized transactions.

1. Call ynab_uncategorized to list what needs a category
2. Propose a category for up to %d of them, preferring the learned mapping for the payee when there is one
3. Wait for my confirmation, then apply each one with ynab_categorize_transaction

If a payee keeps landing in the same category, offer to pin it with ynab_set_category_mapping.`, batch),
			},
		},
		{
			Role: "assistant",
			Content: mcp.PromptContent{
				Type: "text",
				Text: "I'll start from your learned payee mappings, then look at the uncategorized transactions.",
			},
		},
		{
			Role: "user",
			Content: mcp.PromptContent{
				Type: "resource",
				Resource: &mcp.PromptResource{
					URI:      resources.MappingsURI,
					MimeType: "application/json",
					Text:     "Learned payee to category mappings",
				},
			},
		},
	}

	return &mcp.GetPromptResult{
		Description: "Categorize uncategorized transactions",
		Messages:    messages,
	}, nil
}
