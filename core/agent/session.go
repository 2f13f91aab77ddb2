// ABOUTME: Session identifier resolution for agent runtime invocations
// ABOUTME: Guarantees the runtime's minimum session-id length precondition

package agent

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MinSessionIDLength is the runtime's minimum accepted session id length.
const MinSessionIDLength = 33

// sessionIDPadding keeps the generated fallback id UUID-shaped so it clears
// the length check even without secure randomness. Not a secret, just an
// opaque dedup key.
const sessionIDPadding = "xxxxxxxx-xxxx-4xxx-yxxx-xxxxxxxxxxxx"

// ResolveSessionID returns the caller's session id when it satisfies the
// runtime's length precondition, otherwise a freshly generated one.
func ResolveSessionID(provided string) string {
	if len(provided) >= MinSessionIDLength {
		return provided
	}
	return newSessionID()
}

func newSessionID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fmt.Sprintf("session-%d-%s", time.Now().UnixMilli(), sessionIDPadding)
	}
	return id.String()
}
