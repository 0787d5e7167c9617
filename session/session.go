// Package session implements the session memory controller: it records
// conversational turns, delegates generation to a pluggable agent, keeps the
// usage tracker in lockstep with the message store, and compacts history
// when the token budget is nearly exhausted.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andreinakagawa/agentic-ai-basic-cli/agent"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/telemetry"
	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
)

// ErrTurnInFlight reports a second Turn submitted before the previous one
// resolved. The controller processes turns strictly one at a time; callers
// queue or reject, state is never corrupted.
var ErrTurnInFlight = errors.New("session: a turn is already in flight")

// AgentError reports a collaborator failure for one turn. The user message
// stays recorded and the tracker is untouched, so the same turn can be
// retried.
type AgentError struct {
	SessionID string
	Err       error
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("session %s: agent failure: %v", e.SessionID, e.Err)
}

func (e *AgentError) Unwrap() error { return e.Err }

// Result is the per-turn outcome surfaced to the presentation layer.
type Result struct {
	Output          string
	Usage           float64 // fraction of the window in use after any cleanup
	Band            memory.Band
	CleanupOccurred bool
	MessagesEvicted int
	TokensEvicted   int
}

// Info is a point-in-time snapshot of session state for display.
type Info struct {
	ID            string
	MessageCount  int
	CurrentTokens int
	ContextWindow int
	Usage         float64
	Band          memory.Band
}

// Controller orchestrates request/response cycles for one conversation. It
// exclusively owns its Conversation and Tracker pair: any code path that
// appends or evicts a message adjusts the tracker by exactly that message's
// token cost in the same operation.
//
// The controller follows the single-session, single-flight model: one
// interactive loop drives one controller, and the only suspension point is
// the agent call. It is not safe for concurrent use.
type Controller struct {
	id       string
	agent    agent.Agent
	cfg      Config
	store    *memory.Conversation
	tracker  *memory.Tracker
	inFlight bool
}

// New constructs a controller for one session. Invalid configuration is a
// construction-time failure: no partial controller is created.
func New(a agent.Agent, cfg Config) (*Controller, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil agent", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		id:      newSessionID(),
		agent:   a,
		cfg:     cfg,
		store:   memory.NewConversation(),
		tracker: memory.NewTracker(cfg.ContextWindow, cfg.CleanupThreshold, cfg.CleanupTarget),
	}, nil
}

// newSessionID combines a sortable timestamp with a short random suffix.
func newSessionID() string {
	return time.Now().Format("20060102_150405") + "_" + uuid.NewString()[:8]
}

// ID returns the opaque session identifier.
func (s *Controller) ID() string { return s.id }

// Turn runs one request/response cycle: record the user turn, delegate to
// the agent with a pre-turn history snapshot, record the assistant turn with
// its reported token cost, then compact if the budget threshold is reached.
//
// On agent failure the user message remains recorded, no assistant message
// is appended, and the tracker is unchanged, so a retry of the same turn is
// well-defined. Cancellation of ctx behaves the same way.
func (s *Controller) Turn(ctx context.Context, input string) (*Result, error) {
	if s.inFlight {
		return nil, ErrTurnInFlight
	}
	s.inFlight = true
	defer func() { s.inFlight = false }()

	history := s.store.Messages() // pre-turn snapshot handed to the agent
	s.store.Append(memory.Message{Role: memory.RoleUser, Content: input})

	turnID := uuid.NewString()
	ctx = telemetry.WithTurnID(ctx, turnID)
	telemetry.EmitLocalFeatures(ctx, input)

	resp, err := s.agent.Process(ctx, &agent.Context{
		Input:     input,
		History:   history,
		SessionID: s.id,
	})
	if err != nil {
		return nil, &AgentError{SessionID: s.id, Err: err}
	}

	tokens := agent.TokenCount(resp.Metadata)
	s.store.Append(memory.Message{Role: memory.RoleAssistant, Content: resp.Output, Tokens: tokens})
	s.tracker.Add(tokens)

	res := &Result{Output: resp.Output}
	if s.tracker.NeedsCleanup() {
		if err := s.cleanup(turnID, res); err != nil {
			return nil, err
		}
	}
	res.Usage = s.tracker.UsageFraction()
	res.Band = s.tracker.Band()

	telemetry.Emit("turn_completed", map[string]any{
		"turn_id":  turnID,
		"session":  s.id,
		"tokens":   tokens,
		"usage":    res.Usage,
		"band":     res.Band.String(),
		"cleanup":  res.CleanupOccurred,
		"messages": s.store.Len(),
	})
	return res, nil
}

// cleanup plans and applies one compaction pass, recording the outcome on res.
func (s *Controller) cleanup(turnID string, res *Result) error {
	plan := memory.PlanCleanup(
		s.store.Messages(),
		s.tracker.CurrentTokens(),
		s.tracker.TargetTokens(),
		s.cfg.MinMessagesToKeep,
	)
	if plan.Empty() {
		// Nothing evictable (documented degraded state); usage unchanged.
		return nil
	}
	if err := memory.Compact(s.store, s.tracker, plan); err != nil {
		return err
	}
	res.CleanupOccurred = true
	res.MessagesEvicted = len(plan.Indices)
	res.TokensEvicted = plan.TokensRemoved

	telemetry.Emit("cleanup_performed", map[string]any{
		"turn_id":        turnID,
		"session":        s.id,
		"evicted":        len(plan.Indices),
		"tokens_removed": plan.TokensRemoved,
		"remaining":      plan.Remaining,
		"degraded":       plan.Degraded,
	})
	return nil
}

// AppendSystem records a pinned system message, charging its caller-supplied
// token estimate to the tracker. System messages are never evicted.
func (s *Controller) AppendSystem(content string, tokens int) {
	s.store.Append(memory.Message{Role: memory.RoleSystem, Content: content, Tokens: tokens})
	s.tracker.Add(tokens)
}

// History returns a copy of the conversation, oldest first.
func (s *Controller) History() []memory.Message {
	return s.store.Messages()
}

// Clear resets the conversation and the tracker together.
func (s *Controller) Clear() {
	s.store.Clear()
	s.tracker.Reset()
}

// Info returns a display snapshot of the session.
func (s *Controller) Info() Info {
	return Info{
		ID:            s.id,
		MessageCount:  s.store.Len(),
		CurrentTokens: s.tracker.CurrentTokens(),
		ContextWindow: s.tracker.ContextWindow(),
		Usage:         s.tracker.UsageFraction(),
		Band:          s.tracker.Band(),
	}
}
