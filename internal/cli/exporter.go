package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
	"github.com/andreinakagawa/agentic-ai-basic-cli/session"
)

// DefaultExportFilename names transcript files after the session.
func DefaultExportFilename(sessionID string) string {
	return "chat_" + sessionID + ".txt"
}

// FormatTranscript renders a plain-text transcript: a short header followed by
// one block per message in recorded order.
func FormatTranscript(info session.Info, msgs []memory.Message, now time.Time) string {
	var b strings.Builder
	b.WriteString("Chat transcript\n")
	b.WriteString(fmt.Sprintf("Session:  %s\n", info.ID))
	b.WriteString(fmt.Sprintf("Exported: %s\n", now.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Messages: %d\n", len(msgs)))
	b.WriteString(strings.Repeat("-", 40) + "\n")
	for _, m := range msgs {
		b.WriteString(fmt.Sprintf("[%s]\n%s\n\n", strings.ToUpper(string(m.Role)), m.Content))
	}
	return b.String()
}

// Export writes the transcript to path, defaulting the filename when path is
// empty. It returns the path written.
func Export(path string, info session.Info, msgs []memory.Message) (string, error) {
	if path == "" {
		path = DefaultExportFilename(info.ID)
	}
	content := FormatTranscript(info, msgs, time.Now())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("export transcript: %w", err)
	}
	return path, nil
}
