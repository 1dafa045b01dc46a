package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"

	"github.com/brave-experiments/eth-json-rpc-infura/rpc"
	"github.com/brave-experiments/eth-json-rpc-infura/rpcstats"
)

// bodyNotFound is a quirk of the vendor gateway: a missing block is reported
// as a plain-text 200 body instead of a JSON-RPC null result.
const bodyNotFound = "Not Found"

// fetch performs exactly one gateway call and fills the response envelope on
// success. The whole body is read before any parsing.
func (m *Middleware) fetch(ctx context.Context, req *rpc.Request, resp *rpc.Response, projectID, secretKey string) error {
	httpReq, err := m.buildRequest(ctx, req, projectID, secretKey)
	if err != nil {
		return err
	}

	rpcstats.CountCallWithTag(req.Method, req.Origin)

	httpResp, err := m.client.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "call gateway")
	}
	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return errors.Wrap(err, "read gateway response")
	}

	switch {
	case httpResp.StatusCode == http.StatusMethodNotAllowed:
		return errMethodNotSupported()
	case httpResp.StatusCode == http.StatusTeapot:
		return errRateLimited()
	case httpResp.StatusCode == http.StatusServiceUnavailable,
		httpResp.StatusCode == http.StatusGatewayTimeout:
		return errGatewayTimeout()
	case httpResp.StatusCode < 200 || httpResp.StatusCode > 299:
		return errOpaqueUpstream(httpResp.StatusCode, string(body))
	}

	if req.Method == methodGetBlockByNumber && string(body) == bodyNotFound {
		resp.Result = json.RawMessage("null")
		resp.Error = nil
		return nil
	}

	var parsed struct {
		Result json.RawMessage `json:"result"`
		Error  json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return errMalformedBody(err)
	}

	resp.Result = parsed.Result
	resp.Error = parsed.Error
	return nil
}
