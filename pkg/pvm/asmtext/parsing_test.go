package asmtext_test

import (
	"bytes"
	"strings"
	"testing"

	"pine/pkg/pvm"
	"pine/pkg/pvm/asmtext"
)

func parseAndRun(t *testing.T, src string) (*pvm.ExitError, string) {
	t.Helper()
	p := asmtext.NewParser(strings.NewReader(src))
	program, err := p.Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	var out bytes.Buffer
	env := pvm.NewEnvironment(1024, bytes.NewReader(nil), &out)
	runErr := pvm.Run(program, env)
	exit, ok := runErr.(*pvm.ExitError)
	if !ok {
		t.Fatalf("Run err = %v (%T), want *pvm.ExitError", runErr, runErr)
	}
	return exit, out.String()
}

func TestParseAllocStoreLoadPrintExit(t *testing.T) {
	src := "alloc a 8\nmove v 42\nstore a v\nload b a\nprinti b\nexit 0\n"
	exit, out := parseAndRun(t, src)
	if out != "42" {
		t.Fatalf("stdout = %q, want %q", out, "42")
	}
	if exit.Code != 0 {
		t.Fatalf("exit code = %d, want 0", exit.Code)
	}
}

func TestParseCommentsAndBlankLinesIgnored(t *testing.T) {
	src := "# a comment line\n\nmove v 7\n\n# another\nexit v\n"
	exit, _ := parseAndRun(t, src)
	if exit.Code != 7 {
		t.Fatalf("exit code = %d, want 7", exit.Code)
	}
}

func TestParseTrailingCommaTolerated(t *testing.T) {
	src := "add sum, 2, 3,\nexit sum\n"
	exit, _ := parseAndRun(t, src)
	if exit.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exit.Code)
	}
}

func TestParseCallAndLabelRoundTrip(t *testing.T) {
	src := `
		call main
		popr rv
		exit rv
		fun main
		move r 5
		pushr r
		ret
	`
	exit, _ := parseAndRun(t, src)
	if exit.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exit.Code)
	}
}

func TestParseJumpzSkipsWhenConditionZero(t *testing.T) {
	src := `
		move cond 0
		jumpz skip cond
		move r 1
		exit r
		label skip
		move r 2
		exit r
	`
	exit, _ := parseAndRun(t, src)
	if exit.Code != 2 {
		t.Fatalf("exit code = %d, want 2", exit.Code)
	}
}

func TestParseUnrecognizedMnemonicErrors(t *testing.T) {
	p := asmtext.NewParser(strings.NewReader("frobnicate a b\n"))
	if _, err := p.Parse(); err == nil {
		t.Fatalf("expected error for unrecognized mnemonic, got nil")
	}
}
