// ABOUTME: Agent handler proxying prompts to the remote runtime over plain chi
// ABOUTME: Streams markdown chunk-by-chunk; registered outside Huma's typed model

package handlers

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"scholar-assist-api/core/agent"
	"scholar-assist-api/core/errors"
	"scholar-assist-api/core/interfaces"
)

// AgentInvoker defines the proxy operations needed by the handler
type AgentInvoker interface {
	Invoke(ctx context.Context, req agent.InvokeRequest) (*agent.InvokeResult, error)
}

// AgentHandler handles agent proxy requests
type AgentHandler struct {
	invoker AgentInvoker
	logger  interfaces.Logger
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(invoker AgentInvoker, logger interfaces.Logger) *AgentHandler {
	return &AgentHandler{invoker: invoker, logger: logger}
}

// RegisterRoutes registers the agent route directly on the router. The
// response is plain text, a markdown stream, or raw JSON depending on what
// the runtime returns, so the route bypasses the typed API layer.
func (h *AgentHandler) RegisterRoutes(router chi.Router) {
	router.Post("/agent", h.Invoke)
}

// agentRequest is the JSON body of an agent invocation.
type agentRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
	Qualifier string `json:"qualifier"`
}

// Invoke handles the POST /agent endpoint
func (h *AgentHandler) Invoke(w http.ResponseWriter, r *http.Request) {
	var req agentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Missing prompt", http.StatusBadRequest)
		return
	}

	result, err := h.invoker.Invoke(r.Context(), agent.InvokeRequest{
		Prompt:    req.Prompt,
		SessionID: req.SessionID,
		Qualifier: req.Qualifier,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("X-Session-Id", result.SessionID)

	switch result.Kind {
	case agent.ResultStream:
		h.relayStream(w, r, result.Stream)
	case agent.ResultJSON:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(result.JSON)
	default:
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, result.Markdown)
	}
}

// relayStream copies the runtime's body chunk-by-chunk, flushing after each
// read so chunk boundaries survive the proxy hop.
func (h *AgentHandler) relayStream(w http.ResponseWriter, r *http.Request, stream io.ReadCloser) {
	defer stream.Close()

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, 4096)
	for {
		n, err := stream.Read(buf)
		if n > 0 {
			if _, werr := w.Write(buf[:n]); werr != nil {
				return
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if err != nil {
			if err != io.EOF && h.logger != nil && !stderrors.Is(err, context.Canceled) {
				h.logger.Warn("agent stream interrupted", map[string]interface{}{
					"error": err.Error(),
				})
			}
			return
		}
	}
}

func (h *AgentHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *errors.ValidationError
	if stderrors.As(err, &verr) {
		http.Error(w, "Missing prompt", http.StatusBadRequest)
		return
	}

	var cerr *errors.ConfigError
	if stderrors.As(err, &cerr) {
		http.Error(w, cerr.Message, http.StatusInternalServerError)
		return
	}

	var aerr *errors.ExternalAPIError
	if stderrors.As(err, &aerr) && aerr.Message != "" {
		http.Error(w, aerr.Message, http.StatusInternalServerError)
		return
	}

	if h.logger != nil {
		h.logger.Error("agent invocation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	http.Error(w, "Agent request failed", http.StatusInternalServerError)
}
