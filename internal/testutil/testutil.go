// Package testutil provides fixtures for tests that run extractions end to end
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
)

// WriteFiles creates files under dir from slash-separated relative names,
// creating parent directories as needed
func WriteFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("failed to create %s: %v", filepath.Dir(path), err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

// TempProject writes files into a fresh temporary directory and returns it
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	WriteFiles(t, dir, files)
	return dir
}

// ExampleProject returns the path of the ExtJS sample project shipped in
// examples/ext. The test is skipped when it cannot be found or in short mode.
func ExampleProject(t *testing.T) string {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping example project test in short mode")
	}

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Skip("skipping test: cannot locate module root")
	}

	dir := filepath.Join(filepath.Dir(file), "..", "..", "examples", "ext")
	if _, err := os.Stat(filepath.Join(dir, "extdoc.xml")); err != nil {
		t.Skipf("skipping test: example project not found: %v", err)
	}
	return dir
}

// RequireGit skips the test when the git binary is unavailable. Cloning from
// a local path runs git-upload-pack.
func RequireGit(t *testing.T) {
	t.Helper()

	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("skipping test: git not available")
	}
}
