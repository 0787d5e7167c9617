// Package agent defines the pluggable response-generating collaborator
// contract consumed by the session controller.
//
// Implementations are stateless with respect to conversations: all context
// arrives with each Process call, and nothing about a session may be cached
// between calls. This keeps agents portable across callers (CLI, tests,
// services) and makes the session controller the single owner of state.
package agent

import (
	"context"

	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
)

// Context bundles everything an implementation needs to answer one turn.
//
// History is a pre-turn snapshot of the conversation (it excludes the input
// being processed); implementations cannot mutate session state through it.
// Extra carries optional domain-specific data and is opaque to the core.
type Context struct {
	Input     string
	History   []memory.Message
	SessionID string
	Extra     map[string]any
}

// Response carries the produced output plus free-form metadata. The session
// controller recognizes only the MetaTokens key; every other key passes
// through uninspected.
type Response struct {
	Output   string
	Metadata map[string]any
}

// MetaTokens is the metadata key the controller reads for token accounting.
const MetaTokens = "tokens"

// Agent is the capability interface implemented by response generators.
type Agent interface {
	Process(ctx context.Context, in *Context) (*Response, error)
}

// TokenCount extracts the recognized token count from response metadata,
// defaulting to 0 when the key is absent or not numeric. Negative values are
// treated as absent.
func TokenCount(meta map[string]any) int {
	var n int
	switch v := meta[MetaTokens].(type) {
	case int:
		n = v
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	default:
		return 0
	}
	if n < 0 {
		return 0
	}
	return n
}
