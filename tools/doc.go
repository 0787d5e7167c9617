// Package tools defines the tool contracts and implementations exposed to
// LLM-backed agents.
//
// Includes:
//   - ToolDefinition: name, description, JSON input schema, handler.
//   - GenerateSchema[T](): derive a JSON Schema from a Go struct.
//   - File tools: read_file, list_files (non-recursive), edit_file, all
//     confined to the fsops sandbox.
//
// Tool results are deliberately capped and paginated so they stay small and
// predictable for the session's token accounting.
package tools
