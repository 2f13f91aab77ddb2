// ABOUTME: Streaming consumer for the agent endpoint with turn supersession
// ABOUTME: Maintains one current turn; newer submissions cancel in-flight ones

// Package stream consumes the agent endpoint's chunked markdown responses.
package stream

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"scholar-assist-api/core/domain"
	"scholar-assist-api/core/markdown"
)

const defaultErrorMessage = "Agent request failed"

// Observer receives a consistent snapshot of the current turn after every
// state change. Snapshots are value copies; the observer may retain them.
type Observer func(turn domain.AgentTurn, sections []domain.MarkdownSection)

// Consumer submits prompts and accumulates the streamed reply of the single
// current turn. A new Submit supersedes any in-flight turn: its remaining
// chunks, completion, and errors are dropped silently.
type Consumer struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
	sessionID  string
	turn       domain.AgentTurn
	sections   []domain.MarkdownSection
}

// Option configures a Consumer.
type Option func(*Consumer)

// WithHTTPClient sets the HTTP client used for agent requests.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Consumer) {
		s.httpClient = c
	}
}

// WithObserver sets the snapshot callback.
func WithObserver(fn Observer) Option {
	return func(s *Consumer) {
		s.observer = fn
	}
}

// WithSessionID seeds the conversation session id for the first request.
func WithSessionID(id string) Option {
	return func(s *Consumer) {
		s.sessionID = id
	}
}

// NewConsumer creates a consumer targeting the service at baseURL.
func NewConsumer(baseURL string, opts ...Option) *Consumer {
	c := &Consumer{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		turn:       domain.AgentTurn{Status: domain.TurnIdle},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current turn and its section outline.
func (c *Consumer) Snapshot() (domain.AgentTurn, []domain.MarkdownSection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.turn, append([]domain.MarkdownSection(nil), c.sections...)
}

// SessionID returns the session id of the current conversation, if the
// server has assigned one.
func (c *Consumer) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Submit starts a new turn for the prompt, cancelling any in-flight one. It
// returns once the request is dispatched; progress is delivered through the
// observer. The returned channel closes when the turn reaches a terminal
// state or is superseded.
func (c *Consumer) Submit(ctx context.Context, prompt string) <-chan struct{} {
	done := make(chan struct{})

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.generation++
	gen := c.generation

	turnCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.turn = domain.AgentTurn{PromptText: prompt, Status: domain.TurnPending}
	c.sections = nil
	sessionID := c.sessionID
	snapshot := c.turn
	c.mu.Unlock()

	c.notify(snapshot, nil)

	go func() {
		defer close(done)
		defer cancel()
		c.run(turnCtx, gen, prompt, sessionID)
	}()

	return done
}

// Cancel aborts the in-flight turn, if any. The aborted turn produces no
// further observer calls.
func (c *Consumer) Cancel() {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.generation++
	c.mu.Unlock()
}

func (c *Consumer) run(ctx context.Context, gen int, prompt, sessionID string) {
	body, err := encodeRequest(prompt, sessionID)
	if err != nil {
		c.fail(gen, err.Error())
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/agent", body)
	if err != nil {
		c.fail(gen, err.Error())
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isCancellation(err) {
			return
		}
		c.fail(gen, defaultErrorMessage)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := defaultErrorMessage
		if b, rerr := io.ReadAll(io.LimitReader(resp.Body, 4096)); rerr == nil {
			if trimmed := strings.TrimSpace(string(b)); trimmed != "" {
				msg = trimmed
			}
		}
		c.fail(gen, msg)
		return
	}

	if sid := resp.Header.Get("X-Session-Id"); sid != "" {
		c.mu.Lock()
		if gen == c.generation {
			c.sessionID = sid
		}
		c.mu.Unlock()
	}

	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			if !c.append(gen, string(buf[:n])) {
				return
			}
		}
		if err != nil {
			if err == io.EOF {
				c.finish(gen)
			} else if !isCancellation(err) {
				c.fail(gen, defaultErrorMessage)
			}
			return
		}
	}
}

// append adds a chunk and notifies with a consistent snapshot. It reports
// whether the turn is still current.
func (c *Consumer) append(gen int, chunk string) bool {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return false
	}
	c.turn.Status = domain.TurnStreaming
	c.turn.ResponseText += chunk
	c.sections = markdown.Sectionize(c.turn.ResponseText)
	turn, sections := c.turn, append([]domain.MarkdownSection(nil), c.sections...)
	c.mu.Unlock()

	c.notify(turn, sections)
	return true
}

func (c *Consumer) finish(gen int) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.turn.Status = domain.TurnDone
	turn, sections := c.turn, append([]domain.MarkdownSection(nil), c.sections...)
	c.mu.Unlock()

	c.notify(turn, sections)
}

func (c *Consumer) fail(gen int, message string) {
	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		return
	}
	c.turn.Status = domain.TurnErrored
	c.turn.ErrorMessage = message
	turn, sections := c.turn, append([]domain.MarkdownSection(nil), c.sections...)
	c.mu.Unlock()

	c.notify(turn, sections)
}

func (c *Consumer) notify(turn domain.AgentTurn, sections []domain.MarkdownSection) {
	if c.observer != nil {
		c.observer(turn, sections)
	}
}

func isCancellation(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}

func encodeRequest(prompt, sessionID string) (io.Reader, error) {
	payload := struct {
		Prompt    string `json:"prompt"`
		SessionID string `json:"sessionId,omitempty"`
	}{Prompt: prompt, SessionID: sessionID}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode agent request: %w", err)
	}
	return &buf, nil
}
