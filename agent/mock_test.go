package agent_test

import (
	"context"
	"strings"
	"testing"

	"github.com/andreinakagawa/agentic-ai-basic-cli/agent"
	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
)

func process(t *testing.T, in *agent.Context) *agent.Response {
	t.Helper()
	resp, err := agent.Mock{}.Process(context.Background(), in)
	if err != nil {
		t.Fatalf("mock agent failed: %v", err)
	}
	return resp
}

func TestMock_GreetingResponse(t *testing.T) {
	resp := process(t, &agent.Context{Input: "Hello there", SessionID: "s1"})
	if !strings.Contains(resp.Output, "Hello!") {
		t.Fatalf("expected greeting response, got %q", resp.Output)
	}
}

func TestMock_ThanksTakesPriorityOverGreeting(t *testing.T) {
	resp := process(t, &agent.Context{Input: "hi, thanks a lot", SessionID: "s1"})
	if !strings.Contains(resp.Output, "You're welcome") {
		t.Fatalf("expected thanks response, got %q", resp.Output)
	}
}

func TestMock_AcknowledgesHistory(t *testing.T) {
	in := &agent.Context{
		Input:     "hello",
		SessionID: "s1",
		History: []memory.Message{
			{Role: memory.RoleUser, Content: "a"},
			{Role: memory.RoleAssistant, Content: "b"},
		},
	}
	resp := process(t, in)
	if !strings.Contains(resp.Output, "exchanged 2 messages") {
		t.Fatalf("expected history acknowledgement, got %q", resp.Output)
	}
	if got := resp.Metadata["message_count"]; got != 2 {
		t.Fatalf("unexpected message_count: got %v want 2", got)
	}
}

func TestMock_TokenMetadataConsistent(t *testing.T) {
	resp := process(t, &agent.Context{Input: "tell me something", SessionID: "s1"})

	in, okIn := resp.Metadata["input_tokens"].(int)
	out, okOut := resp.Metadata["output_tokens"].(int)
	if !okIn || !okOut {
		t.Fatalf("token metadata missing or mistyped: %v", resp.Metadata)
	}
	if got := agent.TokenCount(resp.Metadata); got != in+out {
		t.Fatalf("tokens key inconsistent: got %d want %d", got, in+out)
	}
	if in <= 0 || out <= 0 {
		t.Fatalf("expected positive token estimates, got in=%d out=%d", in, out)
	}
}

func TestMock_Deterministic(t *testing.T) {
	in := &agent.Context{Input: "what can you do?", SessionID: "s1"}
	a := process(t, in)
	b := process(t, in)
	if a.Output != b.Output {
		t.Fatalf("mock output not deterministic:\n%q\n%q", a.Output, b.Output)
	}
}

func TestTokenCount_Coercions(t *testing.T) {
	cases := []struct {
		name string
		meta map[string]any
		want int
	}{
		{"absent", map[string]any{}, 0},
		{"int", map[string]any{agent.MetaTokens: 7}, 7},
		{"int64", map[string]any{agent.MetaTokens: int64(9)}, 9},
		{"float64", map[string]any{agent.MetaTokens: 12.0}, 12},
		{"string ignored", map[string]any{agent.MetaTokens: "42"}, 0},
		{"negative ignored", map[string]any{agent.MetaTokens: -5}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := agent.TokenCount(tc.meta); got != tc.want {
				t.Fatalf("TokenCount: got %d want %d", got, tc.want)
			}
		})
	}
}
