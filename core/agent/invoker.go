// ABOUTME: Invoker contract for the remote agent runtime and its response shapes
// ABOUTME: Models the transport's polymorphic reply as an explicit tagged union

// Package agent proxies prompts to a remote managed agent runtime and relays
// the markdown reply, single-shot or streamed.
package agent

import (
	"context"
	"encoding/json"
	"io"
)

// ResponseKind tags the shape of the runtime's reply.
type ResponseKind int

const (
	// KindText is a one-shot reply already decoded to text.
	KindText ResponseKind = iota

	// KindStream is a byte stream to relay with chunk boundaries intact.
	KindStream

	// KindBytes is a one-shot reply still in raw bytes.
	KindBytes

	// KindUnknown is an unrecognized envelope; relayed as JSON verbatim.
	KindUnknown
)

// RuntimeResponse is one reply from the agent runtime. Exactly the field
// matching Kind is set.
type RuntimeResponse struct {
	Kind   ResponseKind
	Text   string
	Stream io.ReadCloser
	Bytes  []byte
	Raw    json.RawMessage
}

// Command is one resolved invocation of the agent runtime.
type Command struct {
	// RuntimeARN identifies the target endpoint
	RuntimeARN string

	// Region is the runtime's deployment region
	Region string

	// SessionID is the resolved session identifier, always >= 33 chars
	SessionID string

	// Qualifier selects the endpoint resolution qualifier
	Qualifier string

	// Payload is the JSON prompt envelope
	Payload []byte
}

// Invoker sends one command to the agent runtime. Implementations live under
// infrastructure and are swapped out for fakes in tests.
type Invoker interface {
	Invoke(ctx context.Context, cmd Command) (*RuntimeResponse, error)
}
