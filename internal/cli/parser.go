// Package cli implements the interactive chat surface: slash-command parsing,
// styled terminal output, and transcript export.
package cli

import (
	"fmt"
	"strings"
)

// Kind classifies a parsed input line.
type Kind int

const (
	// KindMessage is plain conversational input for the agent.
	KindMessage Kind = iota
	KindHelp
	KindExit
	KindSession
	KindExport
	KindClear
)

// Command is a parsed input line. Arg is set only for commands that take one
// (currently /export's optional filename).
type Command struct {
	Kind Kind
	Arg  string
}

var verbs = map[string]Kind{
	"/help":    KindHelp,
	"/exit":    KindExit,
	"/quit":    KindExit,
	"/session": KindSession,
	"/export":  KindExport,
	"/clear":   KindClear,
}

// Parse classifies an input line. Lines not starting with "/" are messages;
// unknown verbs produce an error, with a nearest-match suggestion when one is
// close enough to look like a typo.
func Parse(line string) (Command, error) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "/") {
		return Command{Kind: KindMessage, Arg: trimmed}, nil
	}

	verb, rest, _ := strings.Cut(trimmed, " ")
	verb = strings.ToLower(verb)
	kind, ok := verbs[verb]
	if !ok {
		if s := suggest(verb); s != "" {
			return Command{}, fmt.Errorf("unknown command %q (did you mean %s?)", verb, s)
		}
		return Command{}, fmt.Errorf("unknown command %q (try /help)", verb)
	}
	return Command{Kind: kind, Arg: strings.TrimSpace(rest)}, nil
}

// suggest returns the known verb closest to the input, or "" when nothing is
// within typo distance.
func suggest(verb string) string {
	const maxDistance = 2
	best, bestDist := "", maxDistance+1
	for known := range verbs {
		if d := levenshtein(verb, known); d < bestDist {
			best, bestDist = known, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, min(curr[j-1]+1, prev[j-1]+cost))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}
