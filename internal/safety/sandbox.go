// Package safety confines agent tool file access to configured sandbox roots.
package safety

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body surfaced back to the agent as
// JSON inside a tool_result payload.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// readDenied lists path prefixes (relative to the root) that tools may never
// read: VCS internals and the telemetry/event directory.
var readDenied = []string{".git", ".agentic"}

// writeDeniedNames lists basenames that tools may never write anywhere in
// the sandbox, on top of the read denylist.
var writeDeniedNames = []string{"go.mod", "go.sum"}

// ResolveRoots returns absolute, symlink-resolved read and write roots.
// An empty readRoot defaults to the working directory; an empty writeRoot
// defaults to the read root.
func ResolveRoots(readRoot, writeRoot string) (absRead, absWrite string, err error) {
	if readRoot == "" {
		readRoot, err = os.Getwd()
		if err != nil {
			return "", "", fmt.Errorf("getwd: %w", err)
		}
	}
	if writeRoot == "" {
		writeRoot = readRoot
	}

	if absRead, err = filepath.Abs(readRoot); err != nil {
		return "", "", fmt.Errorf("abs(readRoot): %w", err)
	}
	if absWrite, err = filepath.Abs(writeRoot); err != nil {
		return "", "", fmt.Errorf("abs(writeRoot): %w", err)
	}

	// Resolve symlinks where possible so later boundary checks are reliable;
	// a root that does not fully resolve stays as the absolute path.
	if r, err := filepath.EvalSymlinks(absRead); err == nil {
		absRead = r
	}
	if w, err := filepath.EvalSymlinks(absWrite); err == nil {
		absWrite = w
	}
	return absRead, absWrite, nil
}

// resolveInsideRoot turns relPath into an absolute path under absRoot,
// rejecting absolute inputs, parent traversal, and symlink escapes. It
// returns the resolved candidate plus its root-relative slash form.
func resolveInsideRoot(absRoot, relPath string) (candidate, rel string, err error) {
	if filepath.IsAbs(relPath) {
		return "", "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "absolute paths are not allowed"}
	}

	cleaned := filepath.Clean(relPath)
	if cleaned == "" {
		cleaned = "."
	}
	candidate = filepath.Join(absRoot, cleaned)

	// Best-effort symlink resolution: resolve the whole candidate when it
	// exists, otherwise resolve the deepest existing ancestor and rejoin
	// the leaf so escapes via a symlinked parent still show up.
	if resolved, rerr := filepath.EvalSymlinks(candidate); rerr == nil {
		candidate = resolved
	} else if resolvedParent, perr := filepath.EvalSymlinks(filepath.Dir(candidate)); perr == nil {
		candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	r, rerr := filepath.Rel(absRoot, candidate)
	if rerr != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) || filepath.IsAbs(r) {
		return "", "", ToolError{Code: "ERR_PATH_OUTSIDE_SANDBOX", Message: "requested path resolves outside the sandbox root"}
	}
	return candidate, filepath.ToSlash(r), nil
}

func underAny(rel string, prefixes []string) bool {
	for _, p := range prefixes {
		if rel == p || strings.HasPrefix(rel, p+"/") {
			return true
		}
	}
	return false
}

// ValidateReadPath resolves relPath against the read root and enforces the
// read denylist. On violation it returns a ToolError.
func ValidateReadPath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolveInsideRoot(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underAny(rel, readDenied) {
		return "", ToolError{Code: "ERR_DENIED_READ", Message: "reads under .git/ or .agentic/ are not allowed"}
	}
	return candidate, nil
}

// ValidateWritePath resolves relPath against the write root and enforces the
// write denylist: everything the read denylist covers, plus module metadata
// files anywhere in the tree.
func ValidateWritePath(absRoot, relPath string) (string, error) {
	candidate, rel, err := resolveInsideRoot(absRoot, relPath)
	if err != nil {
		return "", err
	}
	if underAny(rel, readDenied) {
		return "", ToolError{Code: "ERR_DENIED_WRITE", Message: "writes under .git/ or .agentic/ are not allowed"}
	}
	base := filepath.Base(rel)
	for _, name := range writeDeniedNames {
		if base == name {
			return "", ToolError{Code: "ERR_DENIED_WRITE", Message: fmt.Sprintf("writes to %s are not allowed", name)}
		}
	}
	return candidate, nil
}
