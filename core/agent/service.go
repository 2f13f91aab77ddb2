// ABOUTME: Agent proxy service validating prompts and dispatching runtime replies
// ABOUTME: Resolves session id and qualifier, keeps the HTTP layer shape-agnostic

package agent

import (
	"context"
	"encoding/json"
	"io"
	"strings"

	"scholar-assist-api/core/errors"
	"scholar-assist-api/core/interfaces"
)

// DefaultQualifier is used when neither the caller nor the configuration
// provides one.
const DefaultQualifier = "DEFAULT"

// Config holds the remote runtime settings. Region and RuntimeARN are
// validated per invocation, not at startup, so a misconfigured deployment
// still serves search traffic.
type Config struct {
	// Region is the runtime's deployment region
	Region string

	// RuntimeARN identifies the target endpoint
	RuntimeARN string

	// Qualifier is the default resolution qualifier
	Qualifier string
}

// InvokeRequest is one prompt submission.
type InvokeRequest struct {
	Prompt    string
	SessionID string
	Qualifier string
}

// ResultKind tags how the HTTP layer should render an invocation result.
type ResultKind int

const (
	// ResultMarkdown is a complete markdown document.
	ResultMarkdown ResultKind = iota

	// ResultStream relays bytes as they arrive.
	ResultStream

	// ResultJSON is the fallback for an unrecognized runtime envelope.
	ResultJSON
)

// InvokeResult is the outcome of a successful invocation.
type InvokeResult struct {
	Kind      ResultKind
	Markdown  string
	Stream    io.ReadCloser
	JSON      []byte
	SessionID string
}

// Service handles agent proxy operations.
type Service struct {
	cfg     Config
	invoker Invoker
	logger  interfaces.Logger
}

// NewService creates a new agent proxy service.
func NewService(cfg Config, invoker Invoker, logger interfaces.Logger) *Service {
	return &Service{
		cfg:     cfg,
		invoker: invoker,
		logger:  logger,
	}
}

// promptEnvelope is the minimal JSON payload the runtime expects.
type promptEnvelope struct {
	Prompt string `json:"prompt"`
}

// Invoke validates the request, sends the prompt to the runtime, and maps the
// reply shape onto an InvokeResult. A missing prompt never reaches the
// backend.
func (s *Service) Invoke(ctx context.Context, req InvokeRequest) (*InvokeResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, &errors.ValidationError{Field: "prompt", Message: "prompt is required"}
	}

	if s.cfg.Region == "" || s.cfg.RuntimeARN == "" {
		return nil, &errors.ConfigError{
			Setting: "AGENT_REGION, AGENT_RUNTIME_ARN",
			Message: "agent runtime configuration is missing",
		}
	}

	qualifier := req.Qualifier
	if qualifier == "" {
		qualifier = s.cfg.Qualifier
	}
	if qualifier == "" {
		qualifier = DefaultQualifier
	}

	sessionID := ResolveSessionID(req.SessionID)

	payload, err := json.Marshal(promptEnvelope{Prompt: req.Prompt})
	if err != nil {
		return nil, errors.WrapError(err, "failed to encode prompt")
	}

	cmd := Command{
		RuntimeARN: s.cfg.RuntimeARN,
		Region:     s.cfg.Region,
		SessionID:  sessionID,
		Qualifier:  qualifier,
		Payload:    payload,
	}

	if s.logger != nil {
		s.logger.Info("invoking agent runtime", map[string]interface{}{
			"qualifier":  qualifier,
			"session_id": sessionID,
		})
	}

	resp, err := s.invoker.Invoke(ctx, cmd)
	if err != nil {
		return nil, errors.WrapError(err, "agent invocation failed")
	}

	result := &InvokeResult{SessionID: sessionID}
	switch resp.Kind {
	case KindText:
		result.Kind = ResultMarkdown
		result.Markdown = ExtractMarkdown(resp.Text)
	case KindStream:
		result.Kind = ResultStream
		result.Stream = resp.Stream
	case KindBytes:
		result.Kind = ResultMarkdown
		result.Markdown = ExtractMarkdown(string(resp.Bytes))
	default:
		raw := resp.Raw
		if raw == nil {
			raw, _ = json.Marshal(resp)
		}
		result.Kind = ResultJSON
		result.JSON = raw
	}

	return result, nil
}
