package codegen_test

import (
	"bytes"
	"testing"

	"pine/pkg/codegen"
	"pine/pkg/parser"
	"pine/pkg/pvm"
	"pine/pkg/sem"
)

func compileAndRun(t *testing.T, src string) (*pvm.ExitError, string) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if err := sem.Analyze(prog); err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	program := codegen.Generate(prog)

	var out bytes.Buffer
	env := pvm.NewEnvironment(1024, bytes.NewReader(nil), &out)
	runErr := pvm.Run(program, env)
	exit, ok := runErr.(*pvm.ExitError)
	if !ok {
		t.Fatalf("Run err = %v (%T), want *pvm.ExitError", runErr, runErr)
	}
	return exit, out.String()
}

func TestGenerateReturnLiteral(t *testing.T) {
	exit, _ := compileAndRun(t, "fun main() -> int begin return 7 end")
	if exit.Code != 7 {
		t.Fatalf("exit code = %d, want 7", exit.Code)
	}
}

func TestGenerateCallWithArguments(t *testing.T) {
	src := `
		fun add(a: int, b: int) -> int begin return a + b end
		fun main() -> int begin return add(2, 3) end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exit.Code)
	}
}

func TestGenerateWhileLoop(t *testing.T) {
	src := `
		fun main() -> int begin
			let i: int = 0
			while i < 3 do
				set i = i + 1
			end
			return i
		end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 3 {
		t.Fatalf("exit code = %d, want 3", exit.Code)
	}
}

func TestGenerateIfElse(t *testing.T) {
	src := `
		fun main() -> int begin
			if false then
				return 0
			else
				return 1
			end
		end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 1 {
		t.Fatalf("exit code = %d, want 1", exit.Code)
	}
}

func TestGenerateIfElifElse(t *testing.T) {
	src := `
		fun classify(n: int) -> int begin
			if n < 0 then
				return -1
			else if n == 0 then
				return 0
			else
				return 1
			end
		end
		fun main() -> int begin
			return classify(5)
		end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 1 {
		t.Fatalf("exit code = %d, want 1", exit.Code)
	}
}

func TestGenerateVoidMainExitsZero(t *testing.T) {
	exit, _ := compileAndRun(t, "fun main() begin end")
	if exit.Code != 0 {
		t.Fatalf("exit code = %d, want 0", exit.Code)
	}
}

func TestGenerateObjectFieldRoundTrip(t *testing.T) {
	src := `
		object Point begin
			x: int
			y: int
		end
		fun main() -> int begin
			let p: Point = new Point(x: 10, y: 32)
			return p.x + p.y
		end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 42 {
		t.Fatalf("exit code = %d, want 42", exit.Code)
	}
}

func TestGenerateUnaryNotAndNegate(t *testing.T) {
	src := `
		fun main() -> int begin
			let flag: bool = not false
			if flag then
				return -5 + 10
			end
			return 0
		end
	`
	exit, _ := compileAndRun(t, src)
	if exit.Code != 5 {
		t.Fatalf("exit code = %d, want 5", exit.Code)
	}
}
