package pvm

// Run executes a program (an ordered instruction list) against env to
// completion. It first validates every instruction's operands against its
// declared formats, then calls Initialize on every instruction, in program
// order, so that label/fun targets are registered before any jump can
// reference them; it then drives the fetch-execute-advance loop described
// by the runtime: execute the instruction at env.InstPtr, then let it
// advance env.InstPtr (IncInstPtr), stopping when the pointer runs past the
// end of the program or an instruction errors.
//
// A successful `exit` surfaces as an *ExitError and is not itself an
// error condition: Run returns it unwrapped so the caller can read Code.
// Any other instruction error is wrapped with the failing instruction's
// index before being returned.
func Run(program []Instruction, env *Environment) error {
	for index, inst := range program {
		if err := inst.Validate(); err != nil {
			return Wrap(err, index)
		}
	}

	for index, inst := range program {
		if err := inst.Initialize(env, index); err != nil {
			return Wrap(err, index)
		}
	}

	env.InstPtr = 0
	for env.InstPtr >= 0 && env.InstPtr < len(program) {
		index := env.InstPtr
		inst := program[index]

		if err := inst.Execute(env); err != nil {
			if exit, ok := err.(*ExitError); ok {
				return exit
			}
			return Wrap(err, index)
		}
		if err := inst.IncInstPtr(env); err != nil {
			return Wrap(err, index)
		}
	}
	return nil
}
