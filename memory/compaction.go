package memory

// Plan describes the outcome of planning one FIFO compaction pass.
//
// Fields:
//   - Indices: positions (in pre-compaction order) selected for eviction.
//   - TokensRemoved: sum of Tokens over the selected messages.
//   - Remaining: projected token total after eviction.
//   - Degraded: the projection is still above target even though the walk
//     exhausted the evictable partition; the pinned messages alone exceed
//     the budget. Accepted state, surfaced as informational.
type Plan struct {
	Indices       []int
	TokensRemoved int
	Remaining     int
	Degraded      bool
}

// Empty reports whether the plan evicts nothing.
func (p Plan) Empty() bool {
	return len(p.Indices) == 0
}

// PlanCleanup selects the oldest-first prefix of evictable messages whose
// removal brings current at or below target.
//
// Rules:
//   - Pinned and never walked: every system message, plus the last minKeep
//     messages by position regardless of role. System messages outside the
//     tail are pinned unconditionally; one inside the tail still occupies a
//     positional slot.
//   - The walk stops as soon as current-removed <= target, or when the
//     evictable partition is exhausted, whichever comes first. An evictable
//     message is never selected while an older evictable one is kept.
//   - Already at or below target: the plan is empty (no-op).
//   - minKeep >= len(msgs): nothing is evictable; the plan is empty and
//     Degraded when current is still above target.
func PlanCleanup(msgs []Message, current, target, minKeep int) Plan {
	if current <= target {
		return Plan{Remaining: current}
	}

	tail := len(msgs) - minKeep
	if tail < 0 {
		tail = 0
	}

	var plan Plan
	for i := 0; i < tail; i++ {
		if current-plan.TokensRemoved <= target {
			break
		}
		if msgs[i].Role == RoleSystem {
			continue
		}
		plan.Indices = append(plan.Indices, i)
		plan.TokensRemoved += msgs[i].Tokens
	}

	plan.Remaining = current - plan.TokensRemoved
	plan.Degraded = plan.Remaining > target
	return plan
}

// Compact applies a previously computed plan to the store and reconciles the
// tracker by exactly the removed token sum. An empty plan is a no-op.
func Compact(c *Conversation, t *Tracker, p Plan) error {
	if p.Empty() {
		return nil
	}
	c.Remove(p.Indices)
	return t.Remove(p.TokensRemoved)
}
