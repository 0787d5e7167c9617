package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andreinakagawa/agentic-ai-basic-cli/memory"
	"github.com/andreinakagawa/agentic-ai-basic-cli/session"
)

var (
	styleAssistantLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true) // amber
	styleUserLabel      = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)  // blue
	styleFaint          = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	styleError          = lipgloss.NewStyle().Foreground(lipgloss.Color("196")) // bright red
	styleHeading        = lipgloss.NewStyle().Bold(true)
)

func bandColor(b memory.Band) lipgloss.Color {
	switch b {
	case memory.BandCritical:
		return lipgloss.Color("196") // bright red
	case memory.BandWarning:
		return lipgloss.Color("220") // yellow/amber
	default:
		return lipgloss.Color("114") // green
	}
}

// UserPrompt is the readline prompt shown before each input line.
func UserPrompt() string {
	return styleUserLabel.Render("You") + ": "
}

// AssistantReply renders a labelled agent reply.
func AssistantReply(output string) string {
	return styleAssistantLabel.Render("Agent") + ": " + output
}

func Welcome(info session.Info) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("Interactive chat session") + "\n")
	b.WriteString(styleFaint.Render(fmt.Sprintf("session %s, context window %d tokens", info.ID, info.ContextWindow)) + "\n")
	b.WriteString(styleFaint.Render("Type /help for commands, /exit to leave."))
	return b.String()
}

func Goodbye(info session.Info) string {
	return styleFaint.Render(fmt.Sprintf("Session %s closed after %d messages.", info.ID, info.MessageCount))
}

func Help() string {
	rows := []struct{ verb, desc string }{
		{"/help", "show this help"},
		{"/session", "show session id and message stats"},
		{"/export [file]", "write the transcript to a file"},
		{"/clear", "discard the conversation and reset usage"},
		{"/exit", "leave the chat"},
	}
	var b strings.Builder
	b.WriteString(styleHeading.Render("Commands") + "\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %-16s %s\n", r.verb, r.desc))
	}
	return strings.TrimRight(b.String(), "\n")
}

func SessionInfo(info session.Info) string {
	var b strings.Builder
	b.WriteString(styleHeading.Render("Session "+info.ID) + "\n")
	b.WriteString(fmt.Sprintf("  messages: %d\n", info.MessageCount))
	b.WriteString("  " + usageLine(info))
	return b.String()
}

// ContextUsage renders one usage line colored by pressure band.
func ContextUsage(info session.Info) string {
	return usageLine(info)
}

func usageLine(info session.Info) string {
	text := fmt.Sprintf("context: %d/%d tokens (%.1f%%, %s)",
		info.CurrentTokens, info.ContextWindow, info.Usage*100, info.Band)
	return lipgloss.NewStyle().Foreground(bandColor(info.Band)).Render(text)
}

// CleanupNotice reports an automatic history trim after a turn.
func CleanupNotice(res session.Result) string {
	return styleFaint.Render(fmt.Sprintf(
		"(trimmed %d old messages, freed %d tokens; usage now %.1f%%)",
		res.MessagesEvicted, res.TokensEvicted, res.Usage*100))
}

func Error(err error) string {
	return styleError.Render("error: " + err.Error())
}
