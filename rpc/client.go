package rpc

import (
	"context"
	"encoding/json"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Upstream forwards a single request to the remote gateway and populates the
// response envelope in place.
type Upstream interface {
	Handle(ctx context.Context, req *Request, resp *Response) error
}

// Handler defines a locally served RPC method.
type Handler func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Client routes JSON-RPC calls either to locally registered handlers or to
// the upstream gateway middleware.
//
// Client is safe for concurrent use; calls share no per-call mutable state.
type Client struct {
	upstream Upstream

	handlersMx sync.RWMutex       // mx guards handlers
	handlers   map[string]Handler // locally registered handlers

	lastID uint64
	logger *zap.Logger
}

// NewClient wires a client to the given upstream.
func NewClient(upstream Upstream, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		upstream: upstream,
		handlers: make(map[string]Handler),
		logger:   logger.Named("rpc.Client"),
	}
}

// RegisterHandler registers a local handler for a specific RPC method.
//
// If a method is registered, it will be executed with the given handler and
// never routed to the upstream gateway.
func (c *Client) RegisterHandler(method string, handler Handler) {
	c.handlersMx.Lock()
	defer c.handlersMx.Unlock()

	c.handlers[method] = handler
}

// handler is a concurrently safe method to get registered handler by name.
func (c *Client) handler(method string) (Handler, bool) {
	c.handlersMx.RLock()
	defer c.handlersMx.RUnlock()
	handler, ok := c.handlers[method]
	return handler, ok
}

// CallContext dispatches a single request and returns the populated response
// envelope. Locally registered handlers are checked first.
func (c *Client) CallContext(ctx context.Context, req *Request) (*Response, error) {
	resp := &Response{ID: req.ID, JSONRPC: req.JSONRPC}

	if handler, ok := c.handler(req.Method); ok {
		c.logger.Debug("serving method locally", zap.String("method", req.Method))
		result, err := handler(ctx, req.Params)
		if err != nil {
			return nil, err
		}
		raw, err := json.Marshal(result)
		if err != nil {
			return nil, errors.Wrap(err, "encode local handler result")
		}
		resp.Result = raw
		return resp, nil
	}

	if err := c.upstream.Handle(ctx, req, resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Call performs a JSON-RPC call with the given arguments and unmarshals into
// result if no error occurred.
//
// The result must be a pointer so that package json can unmarshal into it. You
// can also pass nil, in which case the result is ignored.
func (c *Client) Call(ctx context.Context, result interface{}, method string, args ...interface{}) error {
	params := json.RawMessage("[]")
	if len(args) > 0 {
		raw, err := json.Marshal(args)
		if err != nil {
			return errors.Wrap(err, "encode call params")
		}
		params = raw
	}

	id, err := json.Marshal(atomic.AddUint64(&c.lastID, 1))
	if err != nil {
		return err
	}

	req := &Request{ID: id, JSONRPC: "2.0", Method: method, Params: params}
	resp, err := c.CallContext(ctx, req)
	if err != nil {
		return err
	}

	if len(resp.Error) > 0 && string(resp.Error) != "null" {
		var rpcErr struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(resp.Error, &rpcErr); err == nil && rpcErr.Message != "" {
			return errors.Errorf("RPC error %d: %s", rpcErr.Code, rpcErr.Message)
		}
		return errors.Errorf("RPC error: %s", resp.Error)
	}

	if result == nil || len(resp.Result) == 0 || string(resp.Result) == "null" {
		return nil
	}
	return json.Unmarshal(resp.Result, result)
}

// BlockNumber returns the number of the most recent block known upstream.
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number hexutil.Uint64
	if err := c.Call(ctx, &number, "eth_blockNumber"); err != nil {
		return 0, err
	}
	return uint64(number), nil
}

// GetBlockByNumber returns the raw block at the given number, or nil when the
// gateway reports no such block. A nil number queries the latest block.
func (c *Client) GetBlockByNumber(ctx context.Context, number *big.Int, fullTx bool) (json.RawMessage, error) {
	var block json.RawMessage
	if err := c.Call(ctx, &block, "eth_getBlockByNumber", toBlockNumArg(number), fullTx); err != nil {
		return nil, err
	}
	if string(block) == "null" {
		return nil, nil
	}
	return block, nil
}

func toBlockNumArg(number *big.Int) string {
	if number == nil {
		return "latest"
	}
	return hexutil.EncodeBig(number)
}
