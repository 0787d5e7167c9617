// Package telemetry emits JSONL observability events for session turns,
// cleanup passes, and tool executions.
//
// Emission is opt-in via AGENTIC_OBSERVE_JSON=1 and appends to
// .agentic/events.jsonl in the working directory. Events are best-effort:
// failures are reported on stderr and never interrupt the session loop.
package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const (
	eventsDir  = ".agentic"
	eventsFile = "events.jsonl"
)

// Enabled reports whether JSONL emission is switched on.
func Enabled() bool {
	return os.Getenv("AGENTIC_OBSERVE_JSON") == "1"
}

// Emit writes a single JSON line when observation is enabled, augmenting
// fields with the event name and an RFC3339Nano timestamp.
func Emit(name string, fields map[string]any) {
	if !Enabled() {
		return
	}

	// Shallow copy so the caller's map is not mutated.
	m := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		m[k] = v
	}
	m["event"] = name
	m["time"] = time.Now().UTC().Format(time.RFC3339Nano)

	b, err := json.Marshal(m)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: marshal: %v\n", err)
		return
	}

	if err := os.MkdirAll(eventsDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: mkdir %s: %v\n", eventsDir, err)
		return
	}
	path := filepath.Join(eventsDir, eventsFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: open %s: %v\n", path, err)
		return
	}
	defer f.Close()

	if _, err := f.Write(append(b, '\n')); err != nil {
		fmt.Fprintf(os.Stderr, "telemetry: write %s: %v\n", path, err)
	}
}
