package pvm

import "testing"

func TestAllocInstSetsDest(t *testing.T) {
	env := newTestEnv()
	inst := &AllocInst{Dest: NewVariable("p"), Size: NewConstant(8)}
	if err := inst.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if env.GetVariable("p") != 0 {
		t.Fatalf("alloc addr = %d, want 0", env.GetVariable("p"))
	}
}

func TestDeallocInstFreesAllocation(t *testing.T) {
	env := newTestEnv()
	alloc := &AllocInst{Dest: NewVariable("p"), Size: NewConstant(8)}
	if err := alloc.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dealloc := &DeallocInst{Src: NewVariable("p")}
	if err := dealloc.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if _, err := env.Memory.Len(env.GetVariable("p")); err == nil {
		t.Fatal("expected the allocation to no longer be in use")
	}
}

func TestStoreLoadRoundTrip(t *testing.T) {
	env := newTestEnv()
	alloc := &AllocInst{Dest: NewVariable("p"), Size: NewConstant(8)}
	if err := alloc.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	store := &StoreInst{Addr: NewVariable("p"), Src: NewConstant(42)}
	if err := store.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	load := &LoadInst{Dest: NewVariable("v"), Addr: NewVariable("p")}
	if err := load.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if env.GetVariable("v") != 42 {
		t.Fatalf("load = %d, want 42", env.GetVariable("v"))
	}
}

func TestStoreByteLoadByteRoundTrip(t *testing.T) {
	env := newTestEnv()
	alloc := &AllocInst{Dest: NewVariable("p"), Size: NewConstant(1)}
	if err := alloc.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	storeb := &StoreByteInst{Addr: NewVariable("p"), Src: NewConstant(0xAB)}
	if err := storeb.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	loadb := &LoadByteInst{Dest: NewVariable("v"), Addr: NewVariable("p")}
	if err := loadb.Execute(env); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if env.GetVariable("v") != 0xAB {
		t.Fatalf("loadb = %#x, want 0xAB", env.GetVariable("v"))
	}
}
