package pvm

import "testing"

func TestCallRetRoundTrip(t *testing.T) {
	env := newTestEnv()
	env.FunLabels["add"] = 5
	env.InstPtr = 2

	call := &CallInst{Target: NewLabel("add")}
	if err := call.Execute(env); err != nil {
		t.Fatalf("call Execute: %v", err)
	}
	if err := call.IncInstPtr(env); err != nil {
		t.Fatalf("call IncInstPtr: %v", err)
	}
	if env.InstPtr != 5 {
		t.Fatalf("InstPtr after call = %d, want 5 (fun entry)", env.InstPtr)
	}
	if env.ReturnAddrDepth() != 1 {
		t.Fatalf("ReturnAddrDepth = %d, want 1", env.ReturnAddrDepth())
	}

	ret := &RetInst{}
	if err := ret.Execute(env); err != nil {
		t.Fatalf("ret Execute: %v", err)
	}
	if err := ret.IncInstPtr(env); err != nil {
		t.Fatalf("ret IncInstPtr: %v", err)
	}
	if env.InstPtr != 3 {
		t.Fatalf("InstPtr after ret = %d, want 3 (call+1)", env.InstPtr)
	}
	if env.ReturnAddrDepth() != 0 {
		t.Fatalf("ReturnAddrDepth after ret = %d, want 0", env.ReturnAddrDepth())
	}
}

func TestPushaPopaQueueOrder(t *testing.T) {
	env := newTestEnv()
	env.SetVariable("a", 1)
	env.SetVariable("b", 2)

	if err := (&PushaInst{Src: NewVariable("a")}).Execute(env); err != nil {
		t.Fatalf("pusha: %v", err)
	}
	if err := (&PushaInst{Src: NewVariable("b")}).Execute(env); err != nil {
		t.Fatalf("pusha: %v", err)
	}

	popa := &PopaInst{Dest: NewVariable("first")}
	if err := popa.Execute(env); err != nil {
		t.Fatalf("popa: %v", err)
	}
	if env.GetVariable("first") != 1 {
		t.Fatalf("first popa = %d, want 1 (FIFO)", env.GetVariable("first"))
	}
}

func TestPopaOnEmptyQueueErrors(t *testing.T) {
	env := newTestEnv()
	if err := (&PopaInst{Dest: NewVariable("x")}).Execute(env); err == nil {
		t.Fatal("expected an error popping an empty arg_queue")
	}
}

func TestRetClearsArgQueue(t *testing.T) {
	env := newTestEnv()
	env.PushArg(1)
	if err := (&RetInst{}).Execute(env); err != nil {
		t.Fatalf("ret: %v", err)
	}
	if _, err := env.PopArg(); err == nil {
		t.Fatal("expected arg_queue to have been cleared by ret")
	}
}
