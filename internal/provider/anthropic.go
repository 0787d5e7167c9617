// Package provider implements an Anthropic-backed collaborator.
//
// Invariant:
//   - tool_use and the corresponding tool_result are kept adjacent within a
//     turn to preserve execution context and simplify follow-up reasoning.
//
// Flow:
//
//	user(text) -> assistant(tool_use) -> user(tool_result) -> assistant(text)
package provider

import (
	"github.com/anthropics/anthropic-sdk-go"
)

// NewClient returns a client using API key from the env.
func NewClient() *anthropic.Client {
	c := anthropic.NewClient()
	return &c
}

const DefaultModel = anthropic.ModelClaude3_7SonnetLatest
const APIVersion = "2023-06-01"
