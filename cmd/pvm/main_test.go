package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.pvm")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHandlerRunsTextProgram(t *testing.T) {
	input := writeProgram(t, "alloc a 8\nmove v 42\nstore a v\nload b a\nprinti b\nexit 0\n")
	status := Handler([]string{input}, map[string]string{})
	if status != 0 {
		t.Fatalf("exit status = %d, want 0", status)
	}
}

func TestHandlerPropagatesExitCode(t *testing.T) {
	input := writeProgram(t, "exit 9\n")
	status := Handler([]string{input}, map[string]string{})
	if status != 9 {
		t.Fatalf("exit status = %d, want 9", status)
	}
}

func TestHandlerRejectsMissingFile(t *testing.T) {
	status := Handler([]string{"/nonexistent/program.pvm"}, map[string]string{})
	if status != -1 {
		t.Fatalf("exit status = %d, want -1", status)
	}
}
