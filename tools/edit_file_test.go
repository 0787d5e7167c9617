package tools_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andreinakagawa/agentic-ai-basic-cli/tools"
)

func editInput(t *testing.T, in tools.EditFileInput) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal input: %v", err)
	}
	return b
}

func TestEditFile_CreatesNewFile(t *testing.T) {
	p := rel(t, "created.txt")

	out, err := tools.EditFile(editInput(t, tools.EditFileInput{Path: p, OldStr: "", NewStr: "fresh content"}))
	if err != nil {
		t.Fatalf("EditFile: %v", err)
	}
	if !strings.Contains(out, "created") {
		t.Fatalf("result: got %q", out)
	}

	b, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "fresh content" {
		t.Fatalf("content: got %q want %q", b, "fresh content")
	}
}

func TestEditFile_ReplacesAllOccurrences(t *testing.T) {
	p := rel(t, "multi.txt")
	writeFixture(t, p, "abc abc abc")

	out, err := tools.EditFile(editInput(t, tools.EditFileInput{Path: p, OldStr: "abc", NewStr: "XYZ"}))
	if err != nil {
		t.Fatalf("EditFile: %v", err)
	}
	if out != "OK" {
		t.Fatalf("result: got %q want OK", out)
	}

	b, err := os.ReadFile(filepath.Join(sharedDir, p))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "XYZ XYZ XYZ" {
		t.Fatalf("content: got %q want %q", b, "XYZ XYZ XYZ")
	}
}

func TestEditFile_OldStrNotFound(t *testing.T) {
	p := rel(t, "plain.txt")
	writeFixture(t, p, "nothing to see")

	_, err := tools.EditFile(editInput(t, tools.EditFileInput{Path: p, OldStr: "absent", NewStr: "present"}))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestEditFile_InvalidParams(t *testing.T) {
	cases := []tools.EditFileInput{
		{Path: "", OldStr: "a", NewStr: "b"},
		{Path: rel(t, "f.txt"), OldStr: "same", NewStr: "same"},
	}
	for _, c := range cases {
		if _, err := tools.EditFile(editInput(t, c)); err == nil {
			t.Fatalf("expected error for input %+v", c)
		}
	}
}

func TestEditFile_ExistingFileRequiresOldStr(t *testing.T) {
	p := rel(t, "exists.txt")
	writeFixture(t, p, "already here")

	_, err := tools.EditFile(editInput(t, tools.EditFileInput{Path: p, OldStr: "", NewStr: "replacement"}))
	if err == nil {
		t.Fatal("expected error when old_str empty on existing file")
	}
}
