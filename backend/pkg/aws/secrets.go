package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

type secretsAPI interface {
	GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsClient resolves JSON credential bundles from Secrets Manager. Each
// bundle is fetched once per process.
type SecretsClient struct {
	api secretsAPI

	mu      sync.Mutex
	bundles map[string]map[string]string
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return newSecretsClient(secretsmanager.NewFromConfig(cfg))
}

func newSecretsClient(api secretsAPI) *SecretsClient {
	return &SecretsClient{api: api, bundles: make(map[string]map[string]string)}
}

// GetSecretMap returns the bundle stored under name, which must be a flat
// JSON object of strings.
func (s *SecretsClient) GetSecretMap(ctx context.Context, name string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b, ok := s.bundles[name]; ok {
		return b, nil
	}

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(name)})
	if err != nil {
		return nil, fmt.Errorf("read secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return nil, fmt.Errorf("secret %s is binary", name)
	}

	var bundle map[string]string
	if err := json.Unmarshal([]byte(*out.SecretString), &bundle); err != nil {
		return nil, fmt.Errorf("secret %s: %w", name, err)
	}
	s.bundles[name] = bundle
	return bundle, nil
}

// Lookup returns one key of a bundle, or "" when the key is absent.
func (s *SecretsClient) Lookup(ctx context.Context, name, key string) (string, error) {
	b, err := s.GetSecretMap(ctx, name)
	if err != nil {
		return "", err
	}
	return b[key], nil
}
