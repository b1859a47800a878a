package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.p")
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestHandlerReturnsExitCode(t *testing.T) {
	input := writeSource(t, "fun main() -> int begin return 7 end")
	status := Handler([]string{input}, map[string]string{})
	if status != 7 {
		t.Fatalf("exit status = %d, want 7", status)
	}
}

func TestHandlerRejectsMultipleInputs(t *testing.T) {
	a := writeSource(t, "fun main() -> int begin return 0 end")
	b := writeSource(t, "fun main() -> int begin return 0 end")
	status := Handler([]string{a, b}, map[string]string{})
	if status != -1 {
		t.Fatalf("exit status = %d, want -1", status)
	}
}

func TestHandlerRedirectsStdout(t *testing.T) {
	input := writeSource(t, "fun main() -> int begin return 3 end")
	dir := t.TempDir()
	out := filepath.Join(dir, "out.txt")

	status := Handler([]string{input}, map[string]string{"stdout": out})
	if status != 3 {
		t.Fatalf("exit status = %d, want 3", status)
	}
	if _, err := os.Stat(out); err != nil {
		t.Fatalf("expected --stdout file to be created: %v", err)
	}
}

func TestHandlerRejectsMissingFile(t *testing.T) {
	status := Handler([]string{"/nonexistent/program.p"}, map[string]string{})
	if status != -1 {
		t.Fatalf("exit status = %d, want -1", status)
	}
}
