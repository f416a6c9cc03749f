package repository

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/hirosato/ynab-mcp/internal/domain/categorizer"
	"github.com/hirosato/ynab-mcp/internal/platform/dynamodb/client"
)

const (
	mappingPK     = "CATEGORIZER"
	mappingPrefix = "PAYEE#"
	batchLimit    = 25
	maxRetries    = 5
)

// DynamoDBMappingRepository implements categorizer.Repository. All mappings
// share one partition; the sort key carries the payee.
type DynamoDBMappingRepository struct {
	client client.Client
	table  string
	logger *slog.Logger
}

var _ categorizer.Repository = (*DynamoDBMappingRepository)(nil)

// NewDynamoDBMappingRepository creates a new DynamoDBMappingRepository
func NewDynamoDBMappingRepository(client client.Client, table string, logger *slog.Logger) *DynamoDBMappingRepository {
	return &DynamoDBMappingRepository{
		client: client,
		table:  table,
		logger: logger,
	}
}

type mappingItem struct {
	PK           string `dynamodbav:"PK"`
	SK           string `dynamodbav:"SK"`
	Payee        string `dynamodbav:"Payee"`
	CategoryID   string `dynamodbav:"CategoryID"`
	CategoryName string `dynamodbav:"CategoryName"`
	Count        int    `dynamodbav:"Count"`
	Position     int    `dynamodbav:"Position"`
}

func sortKey(payee string) string {
	return mappingPrefix + payee
}

func (r *DynamoDBMappingRepository) Load(ctx context.Context) ([]categorizer.Mapping, error) {
	items, err := r.queryAll(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	out := make([]categorizer.Mapping, 0, len(items))
	for _, it := range items {
		out = append(out, categorizer.Mapping{
			Payee:        it.Payee,
			CategoryID:   it.CategoryID,
			CategoryName: it.CategoryName,
			Count:        it.Count,
		})
	}
	return out, nil
}

// Save puts every mapping and deletes stored payees that are no longer present.
func (r *DynamoDBMappingRepository) Save(ctx context.Context, mappings []categorizer.Mapping) error {
	existing, err := r.queryAll(ctx)
	if err != nil {
		return err
	}

	keep := make(map[string]struct{}, len(mappings))
	requests := make([]types.WriteRequest, 0, len(mappings)+len(existing))
	for i, m := range mappings {
		keep[sortKey(m.Payee)] = struct{}{}
		item, err := attributevalue.MarshalMap(mappingItem{
			PK:           mappingPK,
			SK:           sortKey(m.Payee),
			Payee:        m.Payee,
			CategoryID:   m.CategoryID,
			CategoryName: m.CategoryName,
			Count:        m.Count,
			Position:     i,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal payee mapping: %w", err)
		}
		requests = append(requests, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}
	for _, it := range existing {
		if _, ok := keep[it.SK]; ok {
			continue
		}
		requests = append(requests, types.WriteRequest{DeleteRequest: &types.DeleteRequest{
			Key: map[string]types.AttributeValue{
				"PK": &types.AttributeValueMemberS{Value: mappingPK},
				"SK": &types.AttributeValueMemberS{Value: it.SK},
			},
		}})
	}

	for start := 0; start < len(requests); start += batchLimit {
		end := min(start+batchLimit, len(requests))
		if err := r.batchWrite(ctx, requests[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *DynamoDBMappingRepository) batchWrite(ctx context.Context, requests []types.WriteRequest) error {
	pending := map[string][]types.WriteRequest{r.table: requests}
	for attempt := 0; attempt < maxRetries && len(pending[r.table]) > 0; attempt++ {
		out, err := r.client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{RequestItems: pending})
		if err != nil {
			r.logger.Error("Failed to write payee mappings", "error", err)
			return fmt.Errorf("failed to write payee mappings: %w", err)
		}
		pending = out.UnprocessedItems
	}
	if n := len(pending[r.table]); n > 0 {
		return fmt.Errorf("failed to write payee mappings: %d requests unprocessed", n)
	}
	return nil
}

func (r *DynamoDBMappingRepository) queryAll(ctx context.Context) ([]mappingItem, error) {
	keyCondition := expression.Key("PK").Equal(expression.Value(mappingPK)).
		And(expression.Key("SK").BeginsWith(mappingPrefix))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCondition).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	var (
		items     []mappingItem
		startKey  map[string]types.AttributeValue
		pageCount int
	)
	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.table),
			KeyConditionExpression:    expr.KeyCondition(),
			ExpressionAttributeNames:  expr.Names(),
			ExpressionAttributeValues: expr.Values(),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			r.logger.Error("Failed to query payee mappings", "error", err)
			return nil, fmt.Errorf("failed to query payee mappings: %w", err)
		}

		var page []mappingItem
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal payee mappings: %w", err)
		}
		for _, it := range page {
			if strings.HasPrefix(it.SK, mappingPrefix) {
				items = append(items, it)
			}
		}

		pageCount++
		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	r.logger.Debug("Loaded payee mappings", "count", len(items), "pages", pageCount)
	return items, nil
}
