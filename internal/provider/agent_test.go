package provider_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/andreinakagawa/agentic-ai-basic-cli/agent"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/provider"
	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
	"github.com/andreinakagawa/agentic-ai-basic-cli/tools"
)

// fakeTransport serves a queue of canned responses and records each request
// body so tests can assert on the exact wire payload.
type fakeTransport struct {
	responses [][]byte
	bodies    [][]byte
}

func (f *fakeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	b, _ := io.ReadAll(req.Body)
	_ = req.Body.Close()
	f.bodies = append(f.bodies, b)

	if len(f.responses) == 0 {
		return nil, fmt.Errorf("no canned response left for request %d", len(f.bodies))
	}
	body := f.responses[0]
	f.responses = f.responses[1:]

	resp := &http.Response{
		StatusCode: 200,
		Body:       io.NopCloser(bytes.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	return resp, nil
}

func newClientWithTransport(rt http.RoundTripper) *anthropic.Client {
	c := anthropic.NewClient(
		option.WithHTTPClient(&http.Client{Transport: rt}),
		option.WithAPIKey("test-key"),
	)
	return &c
}

func textResponse(text string, inTok, outTok int) []byte {
	return []byte(fmt.Sprintf(`{
		"role": "assistant",
		"content": [{"type": "text", "text": %q}],
		"usage": {"input_tokens": %d, "output_tokens": %d}
	}`, text, inTok, outTok))
}

type reqBody struct {
	System []struct {
		Text string `json:"text"`
	} `json:"system"`
	Messages []struct {
		Role    string `json:"role"`
		Content []struct {
			Type      string `json:"type"`
			Text      string `json:"text,omitempty"`
			ToolUseID string `json:"tool_use_id,omitempty"`
		} `json:"content"`
	} `json:"messages"`
}

func decodeBody(t *testing.T, b []byte) reqBody {
	t.Helper()
	var rb reqBody
	if err := json.Unmarshal(b, &rb); err != nil {
		t.Fatalf("unmarshal request body: %v\nbody=%s", err, b)
	}
	return rb
}

func TestProcess_SendsHistoryAndSystemBlocks(t *testing.T) {
	fake := &fakeTransport{responses: [][]byte{textResponse("hi there", 12, 7)}}
	a := provider.NewAnthropic(newClientWithTransport(fake), provider.DefaultModel, nil)

	resp, err := a.Process(context.Background(), &agent.Context{
		Input: "and now?",
		History: []memory.Message{
			{Role: memory.RoleSystem, Content: "You are terse.", Tokens: 4},
			{Role: memory.RoleUser, Content: "first question"},
			{Role: memory.RoleAssistant, Content: "first answer", Tokens: 9},
		},
	})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.Output != "hi there" {
		t.Fatalf("output: got %q want %q", resp.Output, "hi there")
	}

	if len(fake.bodies) != 1 {
		t.Fatalf("requests: got %d want 1", len(fake.bodies))
	}
	rb := decodeBody(t, fake.bodies[0])

	if len(rb.System) != 1 || rb.System[0].Text != "You are terse." {
		t.Fatalf("system blocks: got %+v", rb.System)
	}
	if len(rb.Messages) != 3 {
		t.Fatalf("messages: got %d want 3", len(rb.Messages))
	}
	if rb.Messages[0].Role != "user" || rb.Messages[0].Content[0].Text != "first question" {
		t.Fatalf("oldest message: got %+v", rb.Messages[0])
	}
	if rb.Messages[1].Role != "assistant" || rb.Messages[1].Content[0].Text != "first answer" {
		t.Fatalf("middle message: got %+v", rb.Messages[1])
	}
	if rb.Messages[2].Role != "user" || rb.Messages[2].Content[0].Text != "and now?" {
		t.Fatalf("newest message: got %+v", rb.Messages[2])
	}
}

func TestProcess_ReportsSummedUsage(t *testing.T) {
	fake := &fakeTransport{responses: [][]byte{textResponse("ok", 120, 30)}}
	a := provider.NewAnthropic(newClientWithTransport(fake), provider.DefaultModel, nil)

	resp, err := a.Process(context.Background(), &agent.Context{Input: "hello"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if got := agent.TokenCount(resp.Metadata); got != 150 {
		t.Fatalf("tokens: got %d want 150", got)
	}
	if resp.Metadata["input_tokens"] != 120 || resp.Metadata["output_tokens"] != 30 {
		t.Fatalf("usage metadata: got %+v", resp.Metadata)
	}
}

func TestProcess_ToolLoopExecutesAndContinues(t *testing.T) {
	echo := tools.ToolDefinition{
		Name:        "echo",
		Description: "echoes its input",
		InputSchema: tools.GenerateSchema[struct {
			Text string `json:"text"`
		}](),
		Function: func(input json.RawMessage) (string, error) {
			return "echoed:" + string(input), nil
		},
	}

	toolUse := []byte(`{
		"role": "assistant",
		"content": [{"type": "tool_use", "id": "t1", "name": "echo", "input": {"text": "ping"}}],
		"usage": {"input_tokens": 50, "output_tokens": 20}
	}`)
	fake := &fakeTransport{responses: [][]byte{toolUse, textResponse("done", 80, 10)}}
	a := provider.NewAnthropic(newClientWithTransport(fake), provider.DefaultModel, []tools.ToolDefinition{echo})

	resp, err := a.Process(context.Background(), &agent.Context{Input: "use the tool"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.Output != "done" {
		t.Fatalf("output: got %q want %q", resp.Output, "done")
	}
	if got := agent.TokenCount(resp.Metadata); got != 160 {
		t.Fatalf("summed tokens: got %d want 160", got)
	}
	if resp.Metadata["tool_steps"] != 1 {
		t.Fatalf("tool_steps: got %v want 1", resp.Metadata["tool_steps"])
	}

	if len(fake.bodies) != 2 {
		t.Fatalf("requests: got %d want 2", len(fake.bodies))
	}
	rb := decodeBody(t, fake.bodies[1])
	// Second request carries the tool_use assistant turn plus its paired result.
	last := rb.Messages[len(rb.Messages)-1]
	if last.Role != "user" || last.Content[0].Type != "tool_result" || last.Content[0].ToolUseID != "t1" {
		t.Fatalf("expected trailing tool_result pair, got %+v", last)
	}
	if !strings.Contains(string(fake.bodies[1]), "echoed:") {
		t.Fatal("tool output missing from follow-up request")
	}
}

func TestProcess_UnknownToolReturnsErrorResult(t *testing.T) {
	toolUse := []byte(`{
		"role": "assistant",
		"content": [{"type": "tool_use", "id": "x1", "name": "does_not_exist", "input": {}}],
		"usage": {"input_tokens": 5, "output_tokens": 5}
	}`)
	fake := &fakeTransport{responses: [][]byte{toolUse, textResponse("recovered", 5, 5)}}
	a := provider.NewAnthropic(newClientWithTransport(fake), provider.DefaultModel, []tools.ToolDefinition{})

	resp, err := a.Process(context.Background(), &agent.Context{Input: "call missing"})
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if resp.Output != "recovered" {
		t.Fatalf("output: got %q", resp.Output)
	}
	if !strings.Contains(string(fake.bodies[1]), "tool not found") {
		t.Fatal("expected error tool_result in follow-up request")
	}
}

func TestProcess_TransportErrorPropagates(t *testing.T) {
	fake := &fakeTransport{} // empty queue forces a transport error
	a := provider.NewAnthropic(newClientWithTransport(fake), provider.DefaultModel, nil)

	_, err := a.Process(context.Background(), &agent.Context{Input: "hello"})
	if err == nil {
		t.Fatal("expected error from failing transport")
	}
}
