package memory

// Role identifies the author of a conversational turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one immutable conversational turn.
//
// Tokens is the caller-supplied cost estimate for the turn; zero means
// unknown. The memory core never recounts or adjusts it.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
	Tokens  int    `json:"tokens,omitempty"`
}
