package pvm

import (
	"bufio"
	"io"

	"pine/pkg/utils"
)

// Environment is the PVM's entire runtime state, owned exclusively by one
// program run: the heap, the layered per-frame variable stack, label
// tables, the instruction pointer, the argument/return queues, the
// return-address stack, and the I/O streams.
type Environment struct {
	Memory *Memory

	frames utils.Stack[map[string]uint64]

	Labels    map[string]int
	FunLabels map[string]int

	InstPtr int

	argQueue []uint64
	retQueue []uint64

	retAddrStack utils.Stack[int]

	Stdin  *bufio.Reader
	Stdout io.Writer
}

// NewEnvironment constructs a fresh Environment with a heap of heapSize
// bytes and a single (global) variable frame.
func NewEnvironment(heapSize uint64, stdin io.Reader, stdout io.Writer) *Environment {
	return &Environment{
		Memory:    NewMemory(heapSize),
		frames:    utils.NewStack(map[string]uint64{}),
		Labels:    map[string]int{},
		FunLabels: map[string]int{},
		Stdin:     bufio.NewReader(stdin),
		Stdout:    stdout,
	}
}

// GetVariable reads name from the top (current) frame only, per the
// component design ("lookup pierces the top frame only").
func (e *Environment) GetVariable(name string) uint64 {
	frame, _ := e.frames.Top()
	return frame[name]
}

// SetVariable writes name into the top frame.
func (e *Environment) SetVariable(name string, v uint64) {
	frame, _ := e.frames.Top()
	frame[name] = v
}

// PushFrame pushes a fresh, empty variable frame, used by `fun` on entry.
func (e *Environment) PushFrame() {
	e.frames.Push(map[string]uint64{})
}

// PopFrame pops the current variable frame, used by `ret` on return.
func (e *Environment) PopFrame() {
	if e.frames.Count() > 1 {
		e.frames.Pop()
	}
}

// FrameDepth reports the number of active frames, used by invariant checks
// and tests.
func (e *Environment) FrameDepth() int { return e.frames.Count() }

// PushArg enqueues v onto arg_queue (`pusha`).
func (e *Environment) PushArg(v uint64) { e.argQueue = append(e.argQueue, v) }

// PopArg dequeues the front of arg_queue (`popa`).
func (e *Environment) PopArg() (uint64, error) {
	if len(e.argQueue) == 0 {
		return 0, NewExecuteError("arg_queue is empty")
	}
	v := e.argQueue[0]
	e.argQueue = e.argQueue[1:]
	return v, nil
}

// ClearArgs empties arg_queue, done by `ret` per the calling convention.
func (e *Environment) ClearArgs() { e.argQueue = nil }

// PushRet enqueues v onto ret_queue (`pushr`).
func (e *Environment) PushRet(v uint64) { e.retQueue = append(e.retQueue, v) }

// PopRet dequeues the front of ret_queue (`popr`).
func (e *Environment) PopRet() (uint64, error) {
	if len(e.retQueue) == 0 {
		return 0, NewExecuteError("ret_queue is empty")
	}
	v := e.retQueue[0]
	e.retQueue = e.retQueue[1:]
	return v, nil
}

// ClearRets empties ret_queue, done by `call` before transferring control.
func (e *Environment) ClearRets() { e.retQueue = nil }

// PushReturnAddr pushes idx onto ret_addr_stack, done by `call`.
func (e *Environment) PushReturnAddr(idx int) {
	e.retAddrStack.Push(idx)
}

// PopReturnAddr pops ret_addr_stack, done by `ret`.
func (e *Environment) PopReturnAddr() (int, error) {
	idx, err := e.retAddrStack.Pop()
	if err != nil {
		return 0, NewExecuteError("ret_addr_stack is empty")
	}
	return idx, nil
}

// ReturnAddrDepth reports the number of active calls, matching the
// invariant ret_addr_stack.len() == depth of currently-active calls.
func (e *Environment) ReturnAddrDepth() int { return e.retAddrStack.Count() }
