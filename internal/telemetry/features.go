package telemetry

import (
	"context"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/textstat"
)

// EmitLocalFeatures records cheap deterministic features of one user input,
// keyed to the current turn. Used to correlate input shape with provider
// token usage without persisting the input itself.
func EmitLocalFeatures(ctx context.Context, input string) {
	if !Enabled() {
		return
	}
	turnID, _ := TurnIDFromContext(ctx)
	f := textstat.Count(input)
	Emit("local_features", map[string]any{
		"turn_id":          turnID,
		"features_version": "1",
		"input": map[string]any{
			"bytes": f.Bytes,
			"runes": f.Runes,
			"words": f.Words,
			"lines": f.Lines,
		},
	})
}
