package gateway

import (
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	validator "gopkg.in/go-playground/validator.v9"

	"github.com/brave-experiments/eth-json-rpc-infura/params"
)

const (
	// DefaultCallTimeout bounds a single gateway attempt.
	DefaultCallTimeout = time.Minute

	// retryDelay is the fixed wait between attempts.
	retryDelay = time.Second
)

// Middleware forwards JSON-RPC requests to the remote HTTP gateway, retrying
// transient failures up to the configured attempt budget.
type Middleware struct {
	cfg    params.GatewayConfig
	creds  *credentialsCache
	client *http.Client
	logger *zap.Logger

	gatewayURL string // optional override of the vendor hosts

	newBackOff func() backoff.BackOff
}

// Option customizes a Middleware.
type Option func(*Middleware)

// WithHTTPClient overrides the transport used for gateway calls.
func WithHTTPClient(client *http.Client) Option {
	return func(m *Middleware) { m.client = client }
}

// WithGatewayURL points the middleware at a custom gateway root instead of
// the vendor hosts, keeping the /v3/{projectID} path layout.
func WithGatewayURL(root string) Option {
	return func(m *Middleware) { m.gatewayURL = root }
}

// WithBackOff overrides the inter-attempt backoff factory.
func WithBackOff(factory func() backoff.BackOff) Option {
	return func(m *Middleware) { m.newBackOff = factory }
}

// NewMiddleware validates cfg and wires the middleware. The credentials
// provider is queried lazily, per request, until it yields a project id.
func NewMiddleware(cfg params.GatewayConfig, provider CredentialsProvider, logger *zap.Logger, opts ...Option) (*Middleware, error) {
	if err := cfg.Validate(validator.New()); err != nil {
		return nil, errors.Wrap(err, "invalid gateway config")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	m := &Middleware{
		cfg:    cfg,
		creds:  newCredentialsCache(provider),
		client: &http.Client{Timeout: DefaultCallTimeout},
		logger: logger.Named("gateway"),
		newBackOff: func() backoff.BackOff {
			return backoff.NewConstantBackOff(retryDelay)
		},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}
