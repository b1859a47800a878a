package pvm

import "testing"

func newTestEnv() *Environment {
	return NewEnvironment(64, emptyReader{}, &discard{})
}

type emptyReader struct{}

func (emptyReader) Read(p []byte) (int, error) { return 0, nil }

type discard struct{}

func (*discard) Write(p []byte) (int, error) { return len(p), nil }

func TestIntBinInstAddWraps(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Int64ToU64(9223372036854775807))
	env.SetVariable("b", Int64ToU64(1))
	inst := &IntBinInst{Op: IntAdd, Dest: NewVariable("c"), Src1: NewVariable("a"), Src2: NewVariable("b")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	got := U64ToInt64(env.GetVariable("c"))
	if got != -9223372036854775808 {
		t.Fatalf("add overflow = %d, want INT64_MIN", got)
	}
}

func TestIntBinInstDivisionByZero(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Int64ToU64(1))
	env.SetVariable("b", Int64ToU64(0))
	inst := &IntBinInst{Op: IntDiv, Dest: NewVariable("c"), Src1: NewVariable("a"), Src2: NewVariable("b")}
	if err := inst.Execute(env); err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestIntBinInstComparisons(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Int64ToU64(3))
	env.SetVariable("b", Int64ToU64(5))
	inst := &IntBinInst{Op: IntLt, Dest: NewVariable("c"), Src1: NewVariable("a"), Src2: NewVariable("b")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !U64ToBool(env.GetVariable("c")) {
		t.Fatal("expected 3 < 5 to be true")
	}
}

func TestFloatBinInstAddIsBitIdentical(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Float64ToU64(0.1))
	env.SetVariable("b", Float64ToU64(0.2))
	inst := &FloatBinInst{Op: FloatAdd, Dest: NewVariable("c"), Src1: NewVariable("a"), Src2: NewVariable("b")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	// Added at run time: the constant expression 0.1 + 0.2 would be folded
	// exactly to 0.3 by the compiler.
	x, y := 0.1, 0.2
	want := Float64ToU64(x + y)
	if got := env.GetVariable("c"); got != want {
		t.Fatalf("addf = %#x, want %#x", got, want)
	}
}

func TestNegInst(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Int64ToU64(5))
	inst := &NegInst{Dest: NewVariable("b"), Src: NewVariable("a")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := U64ToInt64(env.GetVariable("b")); got != -5 {
		t.Fatalf("neg = %d, want -5", got)
	}
}

func TestNegFInst(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", Float64ToU64(2.5))
	inst := &NegFInst{Dest: NewVariable("b"), Src: NewVariable("a")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := U64ToFloat64(env.GetVariable("b")); got != -2.5 {
		t.Fatalf("negf = %v, want -2.5", got)
	}
}

func TestIntBinInstValidateRejectsConstantDest(t *testing.T) {
	inst := &IntBinInst{Op: IntAdd, Dest: NewConstant(1), Src1: NewConstant(1), Src2: NewConstant(1)}
	if err := inst.Validate(); err == nil {
		t.Fatal("expected a validation error for a constant dest")
	}
}
