package gateway

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyMethod(t *testing.T) {
	testCases := []struct {
		method    string
		post      bool
		cacheHint string
	}{
		{"eth_getBlockByNumber", true, headerGetBlock},
		{"eth_blockNumber", true, headerBlockNumber},
		{"eth_call", true, ""},
		{"eth_sendRawTransaction", true, ""},
		{"eth_getLogs", true, ""},
		{"eth_getBalance", false, ""},
		{"net_version", false, ""},
		{"made_upMethod", false, ""},
		{"", false, ""},
	}

	for _, tc := range testCases {
		post, cacheHint := classifyMethod(tc.method)
		require.Equal(t, tc.post, post, "method %q", tc.method)
		require.Equal(t, tc.cacheHint, cacheHint, "method %q", tc.method)
	}
}
