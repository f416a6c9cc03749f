package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyBudgetReviewPrompt(t *testing.T) {
	p := &MonthlyBudgetReviewPrompt{}
	assert.Equal(t, "monthly-budget-review", p.GetName())

	args := p.GetArguments()
	require.Len(t, args, 2)
	assert.True(t, args[0].Required)
	assert.False(t, args[1].Required)

	res, err := p.GetPrompt(context.Background(), map[string]interface{}{"month": "2025-03", "focus": "dining out"})
	require.NoError(t, err)
	require.Len(t, res.Messages, 1)
	assert.Equal(t, "user", res.Messages[0].Role)
	assert.Contains(t, res.Messages[0].Content.Text, "starting 2025-03-01")
	assert.Contains(t, res.Messages[0].Content.Text, "attention to dining out")
	assert.Contains(t, res.Messages[0].Content.Text, "ynab_cover_overspending")

	res, err = p.GetPrompt(context.Background(), map[string]interface{}{"month": "2025-03-01"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.Text, "every category")

	_, err = p.GetPrompt(context.Background(), map[string]interface{}{})
	assert.Error(t, err)

	_, err = p.GetPrompt(context.Background(), map[string]interface{}{"month": "March"})
	assert.Error(t, err)
}

func TestCategorizeInboxPrompt(t *testing.T) {
	p := &CategorizeInboxPrompt{}
	assert.Equal(t, "categorize-inbox", p.GetName())

	res, err := p.GetPrompt(context.Background(), map[string]interface{}{})
	require.NoError(t, err)
	require.Len(t, res.Messages, 3)
	assert.Contains(t, res.Messages[0].Content.Text, "up to 10 of them")
	assert.Equal(t, "assistant", res.Messages[1].Role)
	require.NotNil(t, res.Messages[2].Content.Resource)
	assert.Equal(t, "resource", res.Messages[2].Content.Type)
	assert.Equal(t, "ynab://categorizer/mappings", res.Messages[2].Content.Resource.URI)

	res, err = p.GetPrompt(context.Background(), map[string]interface{}{"batch_size": "25"})
	require.NoError(t, err)
	assert.Contains(t, res.Messages[0].Content.Text, "up to 25 of them")

	_, err = p.GetPrompt(context.Background(), map[string]interface{}{"batch_size": "lots"})
	assert.Error(t, err)
	_, err = p.GetPrompt(context.Background(), map[string]interface{}{"batch_size": "0"})
	assert.Error(t, err)
}
