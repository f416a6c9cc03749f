// Package secrets reads the budgeting service token from AWS Secrets Manager.
package secrets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-secretsmanager-caching-go/v2/secretcache"
)

// tokenKeys are the JSON fields checked, in order, when the secret is an object.
var tokenKeys = []string{"YNAB_API_TOKEN", "api_token", "token"}

// SecretsAPI is the Secrets Manager call used when the cache is unavailable.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// TokenProvider resolves the API token stored under one secret id. The
// secret is either the bare token or a JSON object holding it.
type TokenProvider struct {
	client   SecretsAPI
	cache    *secretcache.Cache
	secretID string
	logger   *slog.Logger
}

// NewTokenProvider builds a provider backed by a caching Secrets Manager client.
func NewTokenProvider(ctx context.Context, region, secretID string, logger *slog.Logger) (*TokenProvider, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	client := secretsmanager.NewFromConfig(cfg)

	cache, err := secretcache.New(func(c *secretcache.Cache) {
		c.Client = client
	})
	if err != nil {
		logger.Warn("Failed to initialize secret cache, using direct lookups", "error", err)
		cache = nil
	}

	return &TokenProvider{client: client, cache: cache, secretID: secretID, logger: logger}, nil
}

// NewTokenProviderWithClient builds an uncached provider on client.
func NewTokenProviderWithClient(client SecretsAPI, secretID string, logger *slog.Logger) *TokenProvider {
	return &TokenProvider{client: client, secretID: secretID, logger: logger}
}

// Token returns the API token.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	var (
		secret string
		err    error
	)
	if p.cache != nil {
		secret, err = p.cache.GetSecretString(p.secretID)
	} else {
		secret, err = p.fetch(ctx)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read secret %s: %w", p.secretID, err)
	}

	token, err := parseToken(secret)
	if err != nil {
		return "", fmt.Errorf("secret %s: %w", p.secretID, err)
	}
	p.logger.Debug("Resolved API token from Secrets Manager", "secret_id", p.secretID)
	return token, nil
}

func (p *TokenProvider) fetch(ctx context.Context) (string, error) {
	result, err := p.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(p.secretID),
	})
	if err != nil {
		return "", err
	}
	if result.SecretString == nil {
		return "", errors.New("secret has no string value")
	}
	return *result.SecretString, nil
}

func parseToken(secret string) (string, error) {
	secret = strings.TrimSpace(secret)
	if !strings.HasPrefix(secret, "{") {
		if secret == "" {
			return "", errors.New("secret is empty")
		}
		return secret, nil
	}

	var fields map[string]any
	if err := json.Unmarshal([]byte(secret), &fields); err != nil {
		return "", fmt.Errorf("failed to parse secret JSON: %w", err)
	}
	for _, k := range tokenKeys {
		if v, ok := fields[k].(string); ok && v != "" {
			return v, nil
		}
	}
	return "", fmt.Errorf("secret JSON has none of %s", strings.Join(tokenKeys, ", "))
}
