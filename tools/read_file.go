package tools

import (
	"encoding/json"
	"strings"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/fsops"
)

type ReadFileInput struct {
	Path   string `json:"path" jsonschema_description:"Relative file path within the workspace."`
	Offset int    `json:"offset,omitempty" jsonschema_description:"Line offset (0-based) to start reading from."`
	Limit  int    `json:"limit,omitempty" jsonschema_description:"Maximum lines to return from offset (default 200)."`
}

const (
	defaultReadLimit = 200 // fallback page size when limit <= 0
	maxLineRunes     = 2000
	overallRuneCap   = 12_000
)

const truncationSentinel = "-- truncated; use offset/limit to fetch more --\n"

var ReadFileInputSchema = GenerateSchema[ReadFileInput]()

var ReadFileDefinition = ToolDefinition{
	Name:        "read_file",
	Description: "Read the contents of a file addressed by a relative file path within the workspace. Directory paths and unsafe paths are rejected.",
	InputSchema: ReadFileInputSchema,
	Function:    ReadFile,
}

// ReadFile reads a file via the sandbox and applies deterministic caps for
// LLM-facing pagination: a line window selected by offset/limit, a per-line
// rune clamp, and an overall rune cap. A trailing sentinel signals when any
// content was withheld.
func ReadFile(input json.RawMessage) (string, error) {
	var in ReadFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	content, err := fsops.ReadFile(in.Path)
	if err != nil {
		return "", err
	}

	limit := in.Limit
	if limit <= 0 {
		limit = defaultReadLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	lines := strings.Split(content, "\n")
	if offset > len(lines) {
		offset = len(lines)
	}
	end := offset + limit
	if end > len(lines) {
		end = len(lines)
	}

	truncated := end < len(lines)
	window := make([]string, end-offset)
	for i := range window {
		line := lines[offset+i]
		if r := []rune(line); len(r) > maxLineRunes {
			line = string(r[:maxLineRunes])
			truncated = true
		}
		window[i] = line
	}

	out := strings.Join(window, "\n")
	if r := []rune(out); len(r) > overallRuneCap {
		out = string(r[:overallRuneCap])
		truncated = true
	}

	if truncated {
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		out += truncationSentinel
	}
	return out, nil
}
