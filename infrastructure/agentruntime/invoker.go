// ABOUTME: HTTP transport for the remote agent runtime invocation API
// ABOUTME: Maps one command to one POST and classifies the reply shape

// Package agentruntime implements the agent.Invoker contract over the
// runtime's HTTP invocation API.
package agentruntime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"scholar-assist-api/core/agent"
	"scholar-assist-api/core/errors"
)

// sessionHeader carries the resolved session id to the runtime.
const sessionHeader = "X-Amzn-Bedrock-AgentCore-Runtime-Session-Id"

// maxErrorBodyBytes caps how much of an error reply is read for the message.
const maxErrorBodyBytes = 4096

// HTTPInvoker sends commands to the agent runtime data plane.
type HTTPInvoker struct {
	// BaseURL overrides the region-derived endpoint; tests point this at
	// an httptest server
	BaseURL string

	// BearerToken authorizes inbound requests when the runtime uses
	// token-based identity
	BearerToken string

	// HTTPClient has no timeout on purpose: streamed turns can run long
	HTTPClient *http.Client
}

// Option configures an HTTPInvoker.
type Option func(*HTTPInvoker)

// WithBaseURL sets the endpoint base URL.
func WithBaseURL(u string) Option {
	return func(i *HTTPInvoker) { i.BaseURL = u }
}

// WithBearerToken sets the authorization token.
func WithBearerToken(token string) Option {
	return func(i *HTTPInvoker) { i.BearerToken = token }
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(i *HTTPInvoker) { i.HTTPClient = c }
}

// NewHTTPInvoker creates a runtime transport.
func NewHTTPInvoker(opts ...Option) *HTTPInvoker {
	inv := &HTTPInvoker{
		HTTPClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// endpoint builds the invocation URL for one command.
func (i *HTTPInvoker) endpoint(cmd agent.Command) string {
	base := i.BaseURL
	if base == "" {
		base = fmt.Sprintf("https://bedrock-agentcore.%s.amazonaws.com", cmd.Region)
	}
	return fmt.Sprintf("%s/runtimes/%s/invocations?qualifier=%s",
		base, url.PathEscape(cmd.RuntimeARN), url.QueryEscape(cmd.Qualifier))
}

// Invoke posts the prompt envelope and classifies the reply: an event stream
// is handed back unread for chunk-by-chunk relay, anything else is drained
// into a one-shot byte reply.
func (i *HTTPInvoker) Invoke(ctx context.Context, cmd agent.Command) (*agent.RuntimeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.endpoint(cmd), bytes.NewReader(cmd.Payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(sessionHeader, cmd.SessionID)
	if i.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+i.BearerToken)
	}

	resp, err := i.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		resp.Body.Close()
		return nil, &errors.ExternalAPIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(msg)),
			API:        "agent-runtime",
		}
	}

	if strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream") {
		return &agent.RuntimeResponse{Kind: agent.KindStream, Stream: resp.Body}, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, errors.WrapError(err, "reading runtime reply")
	}
	return &agent.RuntimeResponse{Kind: agent.KindBytes, Bytes: body}, nil
}
