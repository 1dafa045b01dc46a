package gateway

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/brave-experiments/eth-json-rpc-infura/rpc"
)

// Handle drives a single request through the bounded retry loop and populates
// resp in place. It returns nil on success, the original failure when it is
// fatal, and an exhausted-retries failure when the attempt budget runs out on
// a transient one.
func (m *Middleware) Handle(ctx context.Context, req *rpc.Request, resp *rpc.Response) error {
	projectID, secretKey, err := m.creds.ensure(ctx)
	if err != nil {
		return err
	}

	logger := m.logger.With(
		zap.String("method", req.Method),
		zap.String("requestID", uuid.NewString()),
	)

	attempt := 0
	op := func() error {
		attempt++
		err := m.fetch(ctx, req, resp, projectID, secretKey)
		if err == nil {
			return nil
		}
		if !isRetriable(err) {
			return backoff.Permanent(err)
		}
		logger.Warn("transient gateway failure",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", m.cfg.MaxAttempts),
			zap.Error(err))
		return err
	}

	b := backoff.WithContext(backoff.WithMaxRetries(m.newBackOff(), uint64(m.cfg.MaxAttempts-1)), ctx)
	if err := backoff.Retry(op, b); err != nil {
		if isRetriable(err) {
			err = errExhaustedRetries(err)
		}
		logger.Error("gateway request failed", zap.Int("attempts", attempt), zap.Error(err))
		return err
	}
	return nil
}
