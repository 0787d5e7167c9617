// Package fsops performs sandboxed file operations on behalf of agent tools.
// Roots come from AGENTIC_READ_ROOT / AGENTIC_WRITE_ROOT (defaulting to the
// working directory) and every path is validated by the safety package.
package fsops

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/andreinakagawa/agentic-ai-basic-cli/internal/safety"
)

var (
	rootsOnce    sync.Once
	absReadRoot  string
	absWriteRoot string
	rootsErr     error
)

// getRoots returns the cached absolute read/write roots, resolving them from
// the environment once on first use.
func getRoots() (string, string, error) {
	rootsOnce.Do(func() {
		absReadRoot, absWriteRoot, rootsErr = safety.ResolveRoots(
			os.Getenv("AGENTIC_READ_ROOT"),
			os.Getenv("AGENTIC_WRITE_ROOT"),
		)
	})
	return absReadRoot, absWriteRoot, rootsErr
}

// ReadFile reads a file addressed by a relative path under the read root.
// Policy violations come back as safety.ToolError; plain I/O failures are
// returned as-is.
func ReadFile(relPath string) (string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return "", err
	}

	absPath, err := safety.ValidateReadPath(readRoot, relPath)
	if err != nil {
		return "", err
	}

	fi, err := os.Stat(absPath)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return "", safety.ToolError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}

	b, err := os.ReadFile(absPath)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// WriteFile writes content to a file addressed by a relative path under the
// write root, creating parent directories as needed.
func WriteFile(relPath, content string) error {
	_, writeRoot, err := getRoots()
	if err != nil {
		return err
	}

	absPath, err := safety.ValidateWritePath(writeRoot, relPath)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(absPath, []byte(content), 0o644)
}

// ListFiles lists non-recursive directory entries for a relative directory
// path under the read root, returning a JSON-encoded []string of names with
// directories suffixed by "/".
func ListFiles(relDir string) (string, error) {
	readRoot, _, err := getRoots()
	if err != nil {
		return "", err
	}

	if relDir == "" {
		relDir = "."
	}
	absDir, err := safety.ValidateReadPath(readRoot, relDir)
	if err != nil {
		return "", err
	}

	entries, err := os.ReadDir(absDir)
	if err != nil {
		return "", err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() {
			name += "/"
		}
		names = append(names, name)
	}

	b, err := json.Marshal(names)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
