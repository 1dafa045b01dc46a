package rpc

import "encoding/json"

// Request is a single JSON-RPC request as received from the surrounding
// pipeline. Inbound requests may carry extra fields; only the four envelope
// fields are ever forwarded upstream.
type Request struct {
	ID      json.RawMessage `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// Origin identifies the caller for usage attribution. It is never part
	// of the forwarded JSON-RPC payload.
	Origin string `json:"origin,omitempty"`
}

// Payload is the normalized wire form of a request: exactly the four JSON-RPC
// envelope fields. Strict upstream nodes reject unknown keys.
type Payload struct {
	ID      json.RawMessage `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
}

// Normalize strips everything but the envelope fields. Absent params become
// an empty array.
func (r *Request) Normalize() Payload {
	return Payload{
		ID:      r.ID,
		JSONRPC: r.JSONRPC,
		Method:  r.Method,
		Params:  json.RawMessage(r.ParamsJSON()),
	}
}

// ParamsJSON returns the request params as JSON text, defaulting to an empty
// array when the request carries none.
func (r *Request) ParamsJSON() string {
	if len(r.Params) == 0 {
		return "[]"
	}
	return string(r.Params)
}

// Response is the mutable output sink for a single request. Exactly one of
// Result and Error is meaningfully populated; the envelope is written at most
// once per request.
type Response struct {
	ID      json.RawMessage `json:"id,omitempty"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
}
