package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/andreinakagawa/agentic-ai-basic-cli/agent"
	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/telemetry"
	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
	"github.com/andreinakagawa/agentic-ai-basic-cli/tools"
)

const defaultMaxTokens = int64(1024)

// With tool-output caps a handful of steps is plenty; running out means the
// model is looping, so fail fast instead of burning tokens.
const maxToolSteps = 8

// Anthropic exchanges messages with the Anthropic Messages API and dispatches
// tool calls between steps. It is stateless across Process calls: each call
// rebuilds the request from the supplied history.
type Anthropic struct {
	client *anthropic.Client
	model  anthropic.Model
	tools  []tools.ToolDefinition
}

func NewAnthropic(client *anthropic.Client, model anthropic.Model, toolDefs []tools.ToolDefinition) *Anthropic {
	if model == "" {
		model = DefaultModel
	}
	return &Anthropic{client: client, model: model, tools: toolDefs}
}

func (a *Anthropic) anthropicTools() []anthropic.ToolUnionParam {
	out := make([]anthropic.ToolUnionParam, 0, len(a.tools))
	for _, t := range a.tools {
		out = append(out, anthropic.ToolUnionParam{OfTool: &anthropic.ToolParam{
			Name:        t.Name,
			Description: anthropic.String(t.Description),
			InputSchema: t.InputSchema,
		}})
	}
	return out
}

// Process sends the conversation and runs the tool loop until the model
// produces a text-only reply. Reported metadata tokens are the summed API
// usage across all steps of the turn.
func (a *Anthropic) Process(ctx context.Context, in *agent.Context) (*agent.Response, error) {
	system, msgs := buildParams(in)

	turnID, ok := telemetry.TurnIDFromContext(ctx)
	if !ok {
		turnID = fmt.Sprintf("turn-%d", time.Now().UnixNano())
		ctx = telemetry.WithTurnID(ctx, turnID)
	}

	var inputTokens, outputTokens int64
	var reply strings.Builder

	for step := 0; step < maxToolSteps; step++ {
		params := anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: defaultMaxTokens,
			Messages:  msgs,
		}
		if len(system) > 0 {
			params.System = system
		}
		if len(a.tools) > 0 {
			params.Tools = a.anthropicTools()
		}

		msg, err := a.client.Messages.New(ctx, params)
		if err != nil {
			return nil, err
		}
		inputTokens += msg.Usage.InputTokens
		outputTokens += msg.Usage.OutputTokens

		toolResults := []anthropic.ContentBlockParamUnion{}
		for _, block := range msg.Content {
			switch v := block.AsAny().(type) {
			case anthropic.TextBlock:
				if reply.Len() > 0 {
					reply.WriteString("\n")
				}
				reply.WriteString(v.Text)
			case anthropic.ToolUseBlock:
				// Pass raw JSON input through to the tool implementation
				input := json.RawMessage(v.JSON.Input.Raw())
				toolResults = append(toolResults, a.execTool(ctx, v.ID, v.Name, input))
			}
		}

		if len(toolResults) == 0 {
			return &agent.Response{
				Output: reply.String(),
				Metadata: map[string]any{
					agent.MetaTokens: int(inputTokens + outputTokens),
					"input_tokens":   int(inputTokens),
					"output_tokens":  int(outputTokens),
					"model":          string(a.model),
					"tool_steps":     step,
				},
			}, nil
		}

		msgs = append(msgs, msg.ToParam(), anthropic.NewUserMessage(toolResults...))
	}

	return nil, fmt.Errorf("tool loop exceeded %d steps", maxToolSteps)
}

// buildParams splits recorded history into system blocks and alternating
// message params, then appends the current input as the newest user message.
func buildParams(in *agent.Context) ([]anthropic.TextBlockParam, []anthropic.MessageParam) {
	var system []anthropic.TextBlockParam
	msgs := make([]anthropic.MessageParam, 0, len(in.History)+1)
	for _, m := range in.History {
		switch m.Role {
		case memory.RoleSystem:
			system = append(system, anthropic.TextBlockParam{Text: m.Content})
		case memory.RoleUser:
			msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(m.Content)))
		case memory.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(m.Content)))
		}
	}
	msgs = append(msgs, anthropic.NewUserMessage(anthropic.NewTextBlock(in.Input)))
	return system, msgs
}

func (a *Anthropic) execTool(ctx context.Context, id, name string, input json.RawMessage) anthropic.ContentBlockParamUnion {
	var def *tools.ToolDefinition
	for i := range a.tools {
		if a.tools[i].Name == name {
			def = &a.tools[i]
			break
		}
	}

	turnID, _ := telemetry.TurnIDFromContext(ctx)

	// Helper to emit a tool_exec event
	emit := func(durationMs int64, inputSize int, outputSize int, errStr string) {
		fields := map[string]any{
			"tool_name":   name,
			"duration_ms": durationMs,
			"input_size":  inputSize,
			"output_size": outputSize,
			"turn_id":     turnID,
		}
		if errStr != "" {
			fields["error"] = errStr
		} else {
			fields["error"] = nil
		}
		telemetry.Emit("tool_exec", fields)
	}

	start := time.Now()
	inSize := len(input)

	if def == nil {
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool not found")
		return anthropic.NewToolResultBlock(id, "tool not found", true)
	}

	resp, err := def.Function(input)
	if err != nil {
		// Emit a generic error string to avoid leaking raw payloads in telemetry
		emit(time.Since(start).Milliseconds(), inSize, 0, "tool error")
		// Preserve detailed error message in the tool result content returned to the model
		return anthropic.NewToolResultBlock(id, err.Error(), true)
	}
	outSize := len(resp)
	emit(time.Since(start).Milliseconds(), inSize, outSize, "")
	return anthropic.NewToolResultBlock(id, resp, false)
}
