package params

import (
	"fmt"

	validator "gopkg.in/go-playground/validator.v9"
)

const (
	// DefaultNetwork is the gateway network used when none is configured.
	DefaultNetwork = "mainnet"

	// DefaultMaxAttempts is the default attempt budget of the retry loop.
	DefaultMaxAttempts = 5
)

// GatewayConfig holds the construction-time options of the gateway
// middleware. Immutable after construction.
type GatewayConfig struct {
	// Network selects the gateway network, e.g. "mainnet" or "sepolia".
	Network string `validate:"required"`

	// MaxAttempts caps the retry loop. Must be a positive integer.
	MaxAttempts int `validate:"required,gte=1"`

	// Source is an optional attribution label identifying the calling
	// application to the gateway.
	Source string

	// DevMode selects the staging gateway host instead of production.
	DevMode bool
}

// NewGatewayConfig returns a config with defaults applied.
func NewGatewayConfig() GatewayConfig {
	return GatewayConfig{
		Network:     DefaultNetwork,
		MaxAttempts: DefaultMaxAttempts,
	}
}

// Validate validates the GatewayConfig struct and returns an error if
// inconsistent values are found.
func (c *GatewayConfig) Validate(validate *validator.Validate) error {
	if err := validate.Struct(c); err != nil {
		return err
	}

	if c.MaxAttempts < 1 {
		return fmt.Errorf("GatewayConfig.MaxAttempts '%d' is invalid: must be a positive integer", c.MaxAttempts)
	}

	return nil
}
