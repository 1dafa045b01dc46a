package gateway

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/brave-experiments/eth-json-rpc-infura/rpc"
)

const (
	productionDomain = "infura.io"
	stagingDomain    = "dev.infura.io"

	headerSource   = "Infura-Source"
	originInternal = "internal"
)

// buildRequest translates a normalized RPC request into the outbound HTTP
// request for the gateway.
func (m *Middleware) buildRequest(ctx context.Context, req *rpc.Request, projectID, secretKey string) (*http.Request, error) {
	post, cacheHint := classifyMethod(req.Method)
	base := m.baseURL(projectID)

	if !post {
		target := fmt.Sprintf("%s/%s?params=%s", base, req.Method, url.QueryEscape(req.ParamsJSON()))
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return nil, errors.Wrap(err, "build GET request")
		}
		m.setAttribution(httpReq, req)
		return httpReq, nil
	}

	body, err := json.Marshal(req.Normalize())
	if err != nil {
		return nil, errors.Wrap(err, "encode request payload")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, base, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "build POST request")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Content-Type", "application/json")
	m.setAttribution(httpReq, req)

	switch cacheHint {
	case headerGetBlock:
		httpReq.Header.Set(headerGetBlock, req.ParamsJSON())
	case headerBlockNumber:
		httpReq.Header.Set(headerBlockNumber, "true")
	}

	if secretKey != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(":" + secretKey))
		httpReq.Header.Set("Authorization", "Basic "+auth)
	}
	return httpReq, nil
}

// baseURL composes the credential-bearing gateway URL for the configured
// network. Tests and self-hosted deployments may override the vendor hosts.
func (m *Middleware) baseURL(projectID string) string {
	if m.gatewayURL != "" {
		return fmt.Sprintf("%s/v3/%s", m.gatewayURL, projectID)
	}
	domain := productionDomain
	if m.cfg.DevMode {
		domain = stagingDomain
	}
	return fmt.Sprintf("https://%s.%s/v3/%s", m.cfg.Network, domain, projectID)
}

// setAttribution attaches the usage-tracking header when a source label is
// configured. The request origin defaults to "internal".
func (m *Middleware) setAttribution(httpReq *http.Request, req *rpc.Request) {
	if m.cfg.Source == "" {
		return
	}
	origin := req.Origin
	if origin == "" {
		origin = originInternal
	}
	httpReq.Header.Set(headerSource, m.cfg.Source+"/"+origin)
}
