package sem

import (
	"testing"

	"pine/pkg/ast"
	"pine/pkg/parser"
)

func analyze(t *testing.T, src string) (*ast.Program, error) {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return prog, Analyze(prog)
}

func TestMainReturningIntTypeChecks(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin let x = 1 return x + 2 end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTypeMismatchFails(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin return 1.5 end")
	if err == nil {
		t.Fatal("expected a type error")
	}
}

func TestDuplicateIdentifierInSameScopeFails(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin let x = 1 let x = 2 return x end")
	if err == nil {
		t.Fatal("expected a duplicate-identifier error")
	}
}

func TestUnresolvedIdentifierFails(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin return y end")
	if err == nil {
		t.Fatal("expected an unresolved-identifier error")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	src := `fun main() -> int begin
		let x = 1
		if true then let x = 2 return x end
		return x
	end`
	_, err := analyze(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAllPathsReturnRejectsPartialIf(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin if true then return 1 end end")
	if err == nil {
		t.Fatal("expected an all-paths-return error")
	}
}

func TestAllPathsReturnAcceptsIfElse(t *testing.T) {
	_, err := analyze(t, "fun main() -> int begin if true then return 1 else return 2 end end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestImplicitReturnInsertedForVoidFunction(t *testing.T) {
	prog, err := analyze(t, "fun main() begin let x = 1 end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fn := prog.Modules[0].Funs[0]
	last := fn.Body.Stmts[len(fn.Body.Stmts)-1]
	ret, ok := last.(*ast.ReturnStmt)
	if !ok || !ret.Implicit {
		t.Fatalf("expected an implicit return as the last statement, got %T", last)
	}
}

func TestMissingMainFails(t *testing.T) {
	_, err := analyze(t, "fun helper() -> int begin return 1 end")
	if err == nil {
		t.Fatal("expected a missing-main error")
	}
}

func TestCallArgumentTypeMismatchFails(t *testing.T) {
	src := `
		fun add(a: int, b: int) -> int begin return a + b end
		fun main() -> int begin return add(1, 2.0) end
	`
	_, err := analyze(t, src)
	if err == nil {
		t.Fatal("expected a call type-mismatch error")
	}
}

func TestObjectFieldAccessTypeChecks(t *testing.T) {
	src := `
		object Point begin x: int y: int end
		fun main() -> int begin
			let p = new Point(x: 1, y: 2)
			return p.x
		end
	`
	_, err := analyze(t, src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
