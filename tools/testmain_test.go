package tools_test

import (
	"os"
	"path/filepath"
	"testing"
)

var sharedDir string

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tools-tests-")
	if err != nil {
		panic(err)
	}
	_ = os.Setenv("AGENTIC_READ_ROOT", dir)
	_ = os.Setenv("AGENTIC_WRITE_ROOT", dir)
	sharedDir = dir

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// rel builds per-test relative paths so tests don't collide in the shared root.
func rel(t *testing.T, elems ...string) string {
	return filepath.Join(append([]string{t.Name()}, elems...)...)
}
