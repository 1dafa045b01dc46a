package gateway

import (
	"context"
	"sync"

	"github.com/pkg/errors"
)

// CredentialsProvider exposes the gateway project credentials. Lookups must be
// cheap to repeat; both calls may legitimately return empty values while the
// host environment is still initializing its wallet integration.
type CredentialsProvider interface {
	ProjectID(ctx context.Context) (string, error)
	SecretKey(ctx context.Context) (string, error)
}

// credentialsCache lazily caches provider lookups for the process lifetime.
// Concurrent first populations race harmlessly: the looked-up value is stable,
// so last write wins.
type credentialsCache struct {
	provider CredentialsProvider

	mu        sync.RWMutex
	projectID string
	secretKey string
}

func newCredentialsCache(provider CredentialsProvider) *credentialsCache {
	return &credentialsCache{provider: provider}
}

// ensure re-queries the provider while the project id is still empty and
// returns the current credential pair. An empty result is not an error.
func (c *credentialsCache) ensure(ctx context.Context) (projectID, secretKey string, err error) {
	c.mu.RLock()
	projectID, secretKey = c.projectID, c.secretKey
	c.mu.RUnlock()
	if projectID != "" {
		return projectID, secretKey, nil
	}

	projectID, err = c.provider.ProjectID(ctx)
	if err != nil {
		return "", "", errors.Wrap(err, "look up project id")
	}
	secretKey, err = c.provider.SecretKey(ctx)
	if err != nil {
		return "", "", errors.Wrap(err, "look up secret key")
	}

	c.mu.Lock()
	c.projectID, c.secretKey = projectID, secretKey
	c.mu.Unlock()
	return projectID, secretKey, nil
}
