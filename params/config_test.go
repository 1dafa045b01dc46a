package params

import (
	"testing"

	"github.com/stretchr/testify/require"
	validator "gopkg.in/go-playground/validator.v9"
)

func TestNewGatewayConfigDefaults(t *testing.T) {
	cfg := NewGatewayConfig()
	require.Equal(t, "mainnet", cfg.Network)
	require.Equal(t, 5, cfg.MaxAttempts)
	require.Empty(t, cfg.Source)
	require.False(t, cfg.DevMode)

	require.NoError(t, cfg.Validate(validator.New()))
}

func TestGatewayConfigValidate(t *testing.T) {
	validate := validator.New()

	cfg := NewGatewayConfig()
	cfg.MaxAttempts = 0
	require.Error(t, cfg.Validate(validate))

	cfg = NewGatewayConfig()
	cfg.MaxAttempts = -1
	require.Error(t, cfg.Validate(validate))

	cfg = NewGatewayConfig()
	cfg.Network = ""
	require.Error(t, cfg.Validate(validate))

	cfg = NewGatewayConfig()
	cfg.Network = "sepolia"
	cfg.MaxAttempts = 1
	cfg.Source = "my-wallet"
	cfg.DevMode = true
	require.NoError(t, cfg.Validate(validate))
}
