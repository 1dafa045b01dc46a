package rpc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeStripsNonEnvelopeFields(t *testing.T) {
	raw := []byte(`{"id":7,"jsonrpc":"2.0","method":"eth_call","params":[1,2],"origin":"dapp.example","extra":"field"}`)

	var req Request
	require.NoError(t, json.Unmarshal(raw, &req))
	require.Equal(t, "dapp.example", req.Origin)

	body, err := json.Marshal(req.Normalize())
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &decoded))
	require.Len(t, decoded, 4)
	require.NotContains(t, decoded, "origin")
	require.NotContains(t, decoded, "extra")
	require.JSONEq(t, `[1,2]`, string(decoded["params"]))
}

func TestParamsJSONDefaultsToEmptyArray(t *testing.T) {
	req := Request{Method: "eth_blockNumber"}
	require.Equal(t, "[]", req.ParamsJSON())

	req.Params = json.RawMessage(`["0x1"]`)
	require.Equal(t, `["0x1"]`, req.ParamsJSON())
}

func TestResponseOmitsUnsetFields(t *testing.T) {
	resp := Response{ID: json.RawMessage("1"), JSONRPC: "2.0", Result: json.RawMessage(`"0x1"`)}

	body, err := json.Marshal(resp)
	require.NoError(t, err)
	require.NotContains(t, string(body), "error")

	resp = Response{ID: json.RawMessage("1"), JSONRPC: "2.0", Result: json.RawMessage("null")}
	body, err = json.Marshal(resp)
	require.NoError(t, err)
	require.Contains(t, string(body), `"result":null`)
}
