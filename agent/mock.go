package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/textstat"
)

// Mock is a deterministic Agent for tests, demos, and offline runs. It
// classifies the input by keyword, acknowledges how much history exists, and
// reports char-based token estimates through the standard metadata keys.
type Mock struct{}

const mockVersion = "1.0"

// Keyword categories checked in priority order: the most specific win.
var mockKeywords = []struct {
	category string
	words    []string
}{
	{"thanks", []string{"thank", "thanks"}},
	{"farewell", []string{"bye", "goodbye"}},
	{"greeting", []string{"hello", "hi", "hey", "greetings"}},
	{"help", []string{"help", "how", "what", "can you"}},
}

// Process answers from keyword matching; it never fails.
func (Mock) Process(_ context.Context, in *Context) (*Response, error) {
	keywords := detectKeywords(strings.ToLower(in.Input))
	output := mockReply(in, keywords)

	inputTokens := textstat.EstimateTokens(in.Input)
	outputTokens := textstat.EstimateTokens(output)

	return &Response{
		Output: output,
		Metadata: map[string]any{
			MetaTokens:       inputTokens + outputTokens,
			"input_tokens":   inputTokens,
			"output_tokens":  outputTokens,
			"input_keywords": keywords,
			"message_count":  len(in.History),
			"session_id":     in.SessionID,
			"mock_version":   mockVersion,
		},
	}, nil
}

func detectKeywords(lower string) []string {
	var found []string
	for _, k := range mockKeywords {
		for _, w := range k.words {
			if strings.Contains(lower, w) {
				found = append(found, k.category)
				break
			}
		}
	}
	return found
}

func mockReply(in *Context, keywords []string) string {
	ack := ""
	if n := len(in.History); n > 0 {
		ack = fmt.Sprintf("I see we've exchanged %d messages so far. ", n)
	}

	has := func(cat string) bool {
		for _, k := range keywords {
			if k == cat {
				return true
			}
		}
		return false
	}

	switch {
	case has("thanks"):
		return ack + "You're welcome! Happy to help."
	case has("farewell"):
		return ack + "Goodbye! It was nice chatting with you."
	case has("greeting"):
		return ack + "Hello! I'm a mock agent here to help you. " +
			"I can respond to your queries and demonstrate the agent interface."
	case has("help"):
		return ack + "I'm a mock agent designed to demonstrate the agent pattern. " +
			"You can ask me questions, greet me, or chat about anything. " +
			"I'll respond based on keyword matching to show how agents work."
	}

	note := ""
	if len(in.Extra) > 0 {
		note = " I notice you've included additional context in your request."
	}
	preview := in.Input
	if r := []rune(preview); len(r) > 50 {
		preview = string(r[:50])
	}
	return fmt.Sprintf("%sI received your message: %q. "+
		"As a mock agent, I'm responding based on pattern matching.%s "+
		"A real agent would use an LLM to provide more intelligent responses.",
		ack, preview, note)
}
