package gateway

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestIsRetriableTaggedKinds(t *testing.T) {
	require.True(t, isRetriable(errRateLimited()))
	require.True(t, isRetriable(errGatewayTimeout()))
	require.True(t, isRetriable(errMalformedBody(errors.New("unexpected end of JSON input"))))

	require.False(t, isRetriable(errMethodNotSupported()))
	require.False(t, isRetriable(errExhaustedRetries(errGatewayTimeout())))
}

func TestIsRetriableOpaqueUpstreamByPhrase(t *testing.T) {
	// Opaque upstream retriability depends solely on the body wording.
	require.False(t, isRetriable(errOpaqueUpstream(500, "permission denied")))
	require.True(t, isRetriable(errOpaqueUpstream(500, "upstream said: Gateway timeout")))
	// Known fragility of phrase matching, preserved on purpose.
	require.True(t, isRetriable(errOpaqueUpstream(500, "body quoting a SyntaxError somewhere")))
}

func TestIsRetriableKeepsKindThroughWrapping(t *testing.T) {
	err := errors.Wrap(errMethodNotSupported(), "call gateway")
	require.False(t, isRetriable(err))

	err = errors.Wrap(errGatewayTimeout(), "call gateway")
	require.True(t, isRetriable(err))
}

func TestIsRetriablePhraseShimForRawTransportErrors(t *testing.T) {
	require.True(t, isRetriable(errors.New("read tcp 1.2.3.4: ECONNRESET")))
	require.True(t, isRetriable(errors.New("ETIMEDOUT")))
	require.False(t, isRetriable(errors.New("no such host")))
	// Case-sensitive on purpose.
	require.False(t, isRetriable(errors.New("gateway timeout")))
}
