package memory

// Conversation is the ordered message store for a single session, oldest
// first. It owns no behaviour beyond storage and bounded removal; token
// accounting lives in Tracker and is reconciled by the owning controller.
type Conversation struct {
	msgs []Message
}

// NewConversation returns an empty store.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds m to the end of the conversation.
func (c *Conversation) Append(m Message) {
	c.msgs = append(c.msgs, m)
}

// Messages returns a copy of the conversation, oldest first. Collaborators
// (including agents) cannot mutate session state through the returned slice.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len returns the number of stored messages.
func (c *Conversation) Len() int {
	return len(c.msgs)
}

// Clear removes all messages. The caller resets the Tracker in the same
// operation.
func (c *Conversation) Clear() {
	c.msgs = nil
}

// Remove deletes the messages at the given indices (pre-removal positions),
// preserving the relative order of the remainder. Out-of-range indices are
// ignored. The caller reconciles the Tracker by the removed token sum.
func (c *Conversation) Remove(indices []int) {
	if len(indices) == 0 {
		return
	}
	drop := make(map[int]struct{}, len(indices))
	for _, i := range indices {
		drop[i] = struct{}{}
	}
	kept := make([]Message, 0, len(c.msgs))
	for i, m := range c.msgs {
		if _, ok := drop[i]; ok {
			continue
		}
		kept = append(kept, m)
	}
	c.msgs = kept
}
