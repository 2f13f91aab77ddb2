// ABOUTME: AgentTurn models one prompt submission and its streamed response lifecycle
// ABOUTME: Transient state; reset whenever a newer submission supersedes it

package domain

// TurnStatus is the lifecycle state of an agent turn.
type TurnStatus string

const (
	TurnIdle      TurnStatus = "idle"
	TurnPending   TurnStatus = "pending"
	TurnStreaming TurnStatus = "streaming"
	TurnDone      TurnStatus = "done"
	TurnErrored   TurnStatus = "errored"
)

// AgentTurn holds the prompt and the append-only response buffer of the
// current turn.
type AgentTurn struct {
	// PromptText is the submitted prompt
	PromptText string

	// ResponseText accumulates decoded chunks in arrival order
	ResponseText string

	// Status tracks the turn lifecycle
	Status TurnStatus

	// ErrorMessage is set only when Status is TurnErrored
	ErrorMessage string
}
