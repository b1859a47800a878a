package pvm

import (
	"bytes"
	"testing"
)

func runProgram(t *testing.T, program []Instruction) (*Environment, error) {
	t.Helper()
	var out bytes.Buffer
	env := NewEnvironment(256, emptyReader{}, &out)
	return env, Run(program, env)
}

// fun main() -> int begin return 7 end
func TestDispatchReturnLiteralExitsWithThatCode(t *testing.T) {
	program := []Instruction{
		&CallInst{Target: NewLabel("main")},                                // 0
		&PoprInst{Dest: NewVariable("__rv")},                               // 1
		&ExitInst{Code: NewVariable("__rv")},                               // 2
		&FunInst{Target: NewLabel("main")},                                 // 3
		&MoveInst{Dest: NewVariable("r"), Src: NewConstant(Int64ToU64(7))}, // 4
		&PushrInst{Src: NewVariable("r")},                                  // 5
		&RetInst{},                                                         // 6
	}
	_, err := runProgram(t, program)
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Run err = %v, want *ExitError", err)
	}
	if exit.Code != 7 {
		t.Fatalf("exit code = %d, want 7", exit.Code)
	}
}

// add(2, 3) -> 5, exercising pusha/popa/call/ret/pushr/popr together.
func TestDispatchCallWithArgumentsReturnsSum(t *testing.T) {
	program := []Instruction{
		&MoveInst{Dest: NewVariable("x"), Src: NewConstant(Int64ToU64(2))}, // 0
		&MoveInst{Dest: NewVariable("y"), Src: NewConstant(Int64ToU64(3))}, // 1
		&PushaInst{Src: NewVariable("x")},                                  // 2
		&PushaInst{Src: NewVariable("y")},                                  // 3
		&CallInst{Target: NewLabel("add")},                                 // 4
		&PoprInst{Dest: NewVariable("sum")},                                // 5
		&ExitInst{Code: NewVariable("sum")},                                // 6
		&FunInst{Target: NewLabel("add")},                                  // 7
		&PopaInst{Dest: NewVariable("a")},                                  // 8
		&PopaInst{Dest: NewVariable("b")},                                  // 9
		&IntBinInst{Op: IntAdd, Dest: NewVariable("r"), Src1: NewVariable("a"), Src2: NewVariable("b")}, // 10
		&PushrInst{Src: NewVariable("r")}, // 11
		&RetInst{},                        // 12
	}
	env, err := runProgram(t, program)
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Run err = %v, want *ExitError", err)
	}
	if exit.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exit.Code)
	}
	_ = env
}

// while i < 3 do i = i + 1 end; final i == 3.
func TestDispatchWhileLoopCountsToThree(t *testing.T) {
	program := []Instruction{
		&MoveInst{Dest: NewVariable("i"), Src: NewConstant(Int64ToU64(0))}, // 0
		&LabelInst{Target: NewLabel("top")},                                // 1 -> registers 2
		&IntBinInst{Op: IntLt, Dest: NewVariable("cond"), Src1: NewVariable("i"), Src2: NewConstant(Int64ToU64(3))}, // 2
		&JumpzInst{Target: NewLabel("end"), Cond: NewVariable("cond")},     // 3
		&IntBinInst{Op: IntAdd, Dest: NewVariable("i"), Src1: NewVariable("i"), Src2: NewConstant(Int64ToU64(1))}, // 4
		&JumpInst{Target: NewLabel("top")},                                 // 5
		&LabelInst{Target: NewLabel("end")},                                // 6 -> registers 7
		&ExitInst{Code: NewVariable("i")},                                  // 7
	}
	env, err := runProgram(t, program)
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Run err = %v, want *ExitError", err)
	}
	if exit.Code != 3 {
		t.Fatalf("exit code = %d, want 3", exit.Code)
	}
	_ = env
}

// if false then exit 0 else exit 1 end
func TestDispatchIfElseTakesElseBranch(t *testing.T) {
	program := []Instruction{
		&JumpzInst{Target: NewLabel("else"), Cond: NewConstant(BoolToU64(false))}, // 0
		&ExitInst{Code: NewConstant(Int64ToU64(0))},                               // 1
		&LabelInst{Target: NewLabel("else")},                                      // 2 -> registers 3
		&ExitInst{Code: NewConstant(Int64ToU64(1))},                               // 3
	}
	_, err := runProgram(t, program)
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Run err = %v, want *ExitError", err)
	}
	if exit.Code != 1 {
		t.Fatalf("exit code = %d, want 1", exit.Code)
	}
}

// alloc a 8; move v 42; store a v; load b a; printi b; exit 0
func TestDispatchAllocStoreLoadPrintExit(t *testing.T) {
	var out bytes.Buffer
	env := NewEnvironment(64, emptyReader{}, &out)
	program := []Instruction{
		&AllocInst{Dest: NewVariable("a"), Size: NewConstant(8)},
		&MoveInst{Dest: NewVariable("v"), Src: NewConstant(42)},
		&StoreInst{Addr: NewVariable("a"), Src: NewVariable("v")},
		&LoadInst{Dest: NewVariable("b"), Addr: NewVariable("a")},
		&PrintiInst{Src: NewVariable("b")},
		&ExitInst{Code: NewConstant(0)},
	}
	err := Run(program, env)
	exit, ok := err.(*ExitError)
	if !ok {
		t.Fatalf("Run err = %v, want *ExitError", err)
	}
	if exit.Code != 0 {
		t.Fatalf("exit code = %d, want 0", exit.Code)
	}
	if out.String() != "42" {
		t.Fatalf("stdout = %q, want %q", out.String(), "42")
	}
}

func TestDispatchRejectsMalformedOperandsBeforeExecuting(t *testing.T) {
	program := []Instruction{
		&ExitInst{Code: NewLabel("not_a_value")},
	}
	_, err := runProgram(t, program)
	wrapped, ok := err.(*WrappedError)
	if !ok {
		t.Fatalf("Run err = %v (%T), want *WrappedError", err, err)
	}
	if wrapped.InstructionIndex != 0 {
		t.Fatalf("InstructionIndex = %d, want 0", wrapped.InstructionIndex)
	}
	if _, ok := wrapped.Inner.(*ValidateError); !ok {
		t.Fatalf("Inner = %v (%T), want *ValidateError", wrapped.Inner, wrapped.Inner)
	}
}

func TestDispatchWrapsNonExitErrorsWithInstructionIndex(t *testing.T) {
	program := []Instruction{
		&MoveInst{Dest: NewVariable("x"), Src: NewConstant(1)},
		&DeallocInst{Src: NewConstant(99)}, // no-op, not an error
		&LoadInst{Dest: NewVariable("y"), Addr: NewConstant(9999)},
	}
	_, err := runProgram(t, program)
	wrapped, ok := err.(*WrappedError)
	if !ok {
		t.Fatalf("Run err = %v (%T), want *WrappedError", err, err)
	}
	if wrapped.InstructionIndex != 2 {
		t.Fatalf("InstructionIndex = %d, want 2", wrapped.InstructionIndex)
	}
}
