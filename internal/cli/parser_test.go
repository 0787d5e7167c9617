package cli_test

import (
	"strings"
	"testing"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/cli"
)

func TestParse_PlainMessage(t *testing.T) {
	cmd, err := cli.Parse("  hello there  ")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Kind != cli.KindMessage {
		t.Fatalf("kind: got %v want KindMessage", cmd.Kind)
	}
	if cmd.Arg != "hello there" {
		t.Fatalf("arg: got %q want %q", cmd.Arg, "hello there")
	}
}

func TestParse_Verbs(t *testing.T) {
	cases := []struct {
		line string
		want cli.Kind
	}{
		{"/help", cli.KindHelp},
		{"/exit", cli.KindExit},
		{"/quit", cli.KindExit},
		{"/session", cli.KindSession},
		{"/export", cli.KindExport},
		{"/clear", cli.KindClear},
		{"/HELP", cli.KindHelp},
	}
	for _, c := range cases {
		cmd, err := cli.Parse(c.line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", c.line, err)
		}
		if cmd.Kind != c.want {
			t.Fatalf("Parse(%q) kind: got %v want %v", c.line, cmd.Kind, c.want)
		}
	}
}

func TestParse_ExportArgument(t *testing.T) {
	cmd, err := cli.Parse("/export notes.txt")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cmd.Kind != cli.KindExport || cmd.Arg != "notes.txt" {
		t.Fatalf("got %+v", cmd)
	}
}

func TestParse_UnknownVerbSuggestsNearest(t *testing.T) {
	_, err := cli.Parse("/hlep")
	if err == nil {
		t.Fatal("expected error for unknown verb")
	}
	if !strings.Contains(err.Error(), "/help") {
		t.Fatalf("expected /help suggestion, got %v", err)
	}
}

func TestParse_UnknownVerbNoSuggestion(t *testing.T) {
	_, err := cli.Parse("/zzzzzzzzz")
	if err == nil {
		t.Fatal("expected error for unknown verb")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("expected no suggestion for distant verb, got %v", err)
	}
}
