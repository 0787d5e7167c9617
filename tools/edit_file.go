package tools

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/fsops"
)

type EditFileInput struct {
	Path   string `json:"path" jsonschema_description:"Target relative file path."`
	OldStr string `json:"old_str" jsonschema_description:"Exact text to replace; must be present when editing an existing file."`
	NewStr string `json:"new_str" jsonschema_description:"New text to write or replace old_str with."`
}

var EditFileInputSchema = GenerateSchema[EditFileInput]()

var EditFileDefinition = ToolDefinition{
	Name: "edit_file",
	Description: `Create or modify a text file addressed by a relative path within the workspace.

When old_str is empty and the file doesn't exist, a new file is created with new_str as content.

When editing an existing file, all occurrences of old_str are replaced with new_str; old_str and new_str must be different.
`,
	InputSchema: EditFileInputSchema,
	Function:    EditFile,
}

// EditFile creates or edits a file under the sandbox write root.
func EditFile(input json.RawMessage) (string, error) {
	var in EditFileInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", err
	}

	if in.Path == "" || in.OldStr == in.NewStr {
		return "", fmt.Errorf("invalid edit parameters")
	}

	existing, readErr := fsops.ReadFile(in.Path)
	if readErr != nil {
		// Creating a new file requires an empty old_str; any other read
		// failure (policy or I/O) propagates.
		if in.OldStr == "" {
			if err := fsops.WriteFile(in.Path, in.NewStr); err != nil {
				return "", err
			}
			return fmt.Sprintf("Successfully created file %s", in.Path), nil
		}
		return "", readErr
	}

	if in.OldStr == "" {
		return "", fmt.Errorf("old_str must be provided when editing an existing file")
	}

	updated := strings.ReplaceAll(existing, in.OldStr, in.NewStr)
	if updated == existing {
		return "", fmt.Errorf("old_str not found in file")
	}

	if err := fsops.WriteFile(in.Path, updated); err != nil {
		return "", err
	}
	return "OK", nil
}
