package pvm

import "testing"

func TestLabelInstRegistersInstructionAfterItself(t *testing.T) {
	env := newTestEnv()
	program := []Instruction{
		&LabelInst{Target: NewLabel("top")},
		&MoveInst{Dest: NewVariable("x"), Src: NewConstant(1)},
	}
	for idx, inst := range program {
		if err := inst.Initialize(env, idx); err != nil {
			t.Fatalf("Initialize: %v", err)
		}
	}
	if env.Labels["top"] != 1 {
		t.Fatalf("label top = %d, want 1", env.Labels["top"])
	}
}

func TestJumpInstRedirectsInstPtr(t *testing.T) {
	env := newTestEnv()
	env.Labels["top"] = 3
	env.InstPtr = 0
	inst := &JumpInst{Target: NewLabel("top")}
	if err := inst.IncInstPtr(env); err != nil {
		t.Fatalf("IncInstPtr: %v", err)
	}
	if env.InstPtr != 3 {
		t.Fatalf("InstPtr = %d, want 3", env.InstPtr)
	}
}

func TestJumpzInstFallsThroughWhenTrue(t *testing.T) {
	env := newTestEnv()
	env.Labels["end"] = 9
	env.InstPtr = 0
	inst := &JumpzInst{Target: NewLabel("end"), Cond: NewConstant(BoolToU64(true))}
	if err := inst.IncInstPtr(env); err != nil {
		t.Fatalf("IncInstPtr: %v", err)
	}
	if env.InstPtr != 1 {
		t.Fatalf("InstPtr = %d, want 1 (fallthrough)", env.InstPtr)
	}
}

func TestJumpzInstJumpsWhenFalse(t *testing.T) {
	env := newTestEnv()
	env.Labels["end"] = 9
	env.InstPtr = 0
	inst := &JumpzInst{Target: NewLabel("end"), Cond: NewConstant(BoolToU64(false))}
	if err := inst.IncInstPtr(env); err != nil {
		t.Fatalf("IncInstPtr: %v", err)
	}
	if env.InstPtr != 9 {
		t.Fatalf("InstPtr = %d, want 9", env.InstPtr)
	}
}

func TestFunInstPushesFrame(t *testing.T) {
	env := newTestEnv()
	before := env.FrameDepth()
	inst := &FunInst{Target: NewLabel("main")}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if env.FrameDepth() != before+1 {
		t.Fatalf("FrameDepth = %d, want %d", env.FrameDepth(), before+1)
	}
	if err := inst.Initialize(env, 5); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if env.FunLabels["main"] != 5 {
		t.Fatalf("fun_labels[main] = %d, want 5", env.FunLabels["main"])
	}
}
