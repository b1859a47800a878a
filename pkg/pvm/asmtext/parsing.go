// Package asmtext parses the PVM text assembly format: one instruction per
// line, `<name> <operand>*`, with `#`-prefixed line comments and blank
// lines ignored. Grounded on the teacher's pkg/vm.Parser, which parses the
// nand2tetris VM's own flat, line-oriented opcode grammar the same way.
package asmtext

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	pc "github.com/prataprc/goparsec"

	"pine/pkg/pvm"
)

// ----------------------------------------------------------------------------
// Parser Combinator(s)
//
// Every mnemonic has a fixed, known arity (0, 1, 2 or 3 operands) and a
// fixed per-position shape (label, variable, or value); there is no
// variadic operand list to parse, so each arity group gets its own
// combinator rather than a generic comma-separated Kleene list.

var ast = pc.NewAST("pvm_text", 0)

var (
	pProgram = ast.ManyUntil("program", nil, ast.OrdChoice("line", nil, pComment, pInstruction), pc.End())

	pComment = ast.And("comment", nil, pc.Atom("#", "HASH"), pc.Token(`(?m).*$`, "COMMENT"))

	pInstruction = ast.OrdChoice("instruction", nil, pInst3, pInstJumpz, pInst2, pInst1Label, pInst1Var, pInst1Value, pInst0)

	// ret, println
	pInst0 = ast.And("inst0", nil, pOp0)
	pOp0   = ast.OrdChoice("op0", nil, pc.Atom("ret", "RET"), pc.Atom("println", "PRINTLN"))

	// label L / jump L / fun L / call L
	pInst1Label = ast.And("inst1_label", nil, pOp1Label, pLabel)
	pOp1Label   = ast.OrdChoice("op1_label", nil,
		pc.Atom("label", "LABEL"), pc.Atom("jump", "JUMP"),
		pc.Atom("fun", "FUN"), pc.Atom("call", "CALL"),
	)

	// popa dest / popr dest
	pInst1Var = ast.And("inst1_var", nil, pOp1Var, pVariable)
	pOp1Var   = ast.OrdChoice("op1_var", nil, pc.Atom("popa", "POPA"), pc.Atom("popr", "POPR"))

	// dealloc/pusha/pushr/printi/printf/prints/read/exit v
	pInst1Value = ast.And("inst1_value", nil, pOp1Value, pValue)
	pOp1Value   = ast.OrdChoice("op1_value", nil,
		pc.Atom("dealloc", "DEALLOC"), pc.Atom("pusha", "PUSHA"), pc.Atom("pushr", "PUSHR"),
		pc.Atom("printi", "PRINTI"), pc.Atom("printf", "PRINTF"), pc.Atom("prints", "PRINTS"),
		pc.Atom("read", "READ"), pc.Atom("exit", "EXIT"),
	)

	// move/alloc/load/loadb/store/storeb/neg/negf dest v
	pInst2 = ast.And("inst2", nil, pOp2, pVariable, pValue)
	pOp2   = ast.OrdChoice("op2", nil,
		pc.Atom("move", "MOVE"), pc.Atom("alloc", "ALLOC"),
		pc.Atom("loadb", "LOADB"), pc.Atom("load", "LOAD"),
		pc.Atom("storeb", "STOREB"), pc.Atom("store", "STORE"),
		pc.Atom("negf", "NEGF"), pc.Atom("neg", "NEG"),
	)

	// jumpz label v
	pInstJumpz = ast.And("inst_jumpz", nil, pc.Atom("jumpz", "JUMPZ"), pLabel, pValue)

	// dest v1 v2, every int/float arithmetic/comparison/logical mnemonic
	pInst3 = ast.And("inst3", nil, pOp3, pVariable, pValue, pValue)
	pOp3   = ast.OrdChoice("op3", nil,
		pc.Atom("addf", "ADDF"), pc.Atom("subf", "SUBF"), pc.Atom("mulf", "MULF"), pc.Atom("divf", "DIVF"),
		pc.Atom("modf", "MODF"), pc.Atom("powf", "POWF"), pc.Atom("eqf", "EQF"), pc.Atom("neqf", "NEQF"),
		pc.Atom("gtef", "GTEF"), pc.Atom("ltef", "LTEF"), pc.Atom("gtf", "GTF"), pc.Atom("ltf", "LTF"),
		pc.Atom("add", "ADD"), pc.Atom("sub", "SUB"), pc.Atom("mul", "MUL"), pc.Atom("div", "DIV"),
		pc.Atom("mod", "MOD"), pc.Atom("pow", "POW"), pc.Atom("eq", "EQ"), pc.Atom("neq", "NEQ"),
		pc.Atom("gte", "GTE"), pc.Atom("lte", "LTE"), pc.Atom("gt", "GT"), pc.Atom("lt", "LT"),
		pc.Atom("and", "AND"), pc.Atom("or", "OR"),
	)
)

var (
	// An operand is either a value (constant or variable) or, in label
	// position, a name resolved against labels/fun_labels. Trailing ','
	// is tolerated by folding it into the token itself and trimming it
	// when the AST is walked.
	pVariable = pc.Token(`[A-Za-z_][A-Za-z0-9_]*,?`, "VARIABLE")
	pLabel    = pc.Token(`[A-Za-z_][A-Za-z0-9_]*,?`, "LABELNAME")
	pValue    = ast.OrdChoice("value", nil, pFloat, pInt, pVariable)
	pFloat    = pc.Token(`-?[0-9]+\.[0-9]+,?`, "FLOAT")
	pInt      = pc.Token(`-?[0-9]+,?`, "INT")
)

// ----------------------------------------------------------------------------
// Parser

// Parser turns PVM text assembly into a flat []pvm.Instruction, the same
// shape pkg/codegen.Generate produces.
type Parser struct{ reader io.Reader }

func NewParser(r io.Reader) Parser { return Parser{reader: r} }

// Parse runs the full Text -> AST -> []pvm.Instruction pipeline.
func (p *Parser) Parse() ([]pvm.Instruction, error) {
	content, err := io.ReadAll(p.reader)
	if err != nil {
		return nil, fmt.Errorf("cannot read from io.Reader: %s", err)
	}

	root, ok := p.fromSource(content)
	if !ok {
		return nil, fmt.Errorf("failed to parse AST from input content")
	}

	return p.fromAST(root)
}

func (p *Parser) fromSource(source []byte) (pc.Queryable, bool) {
	root, _ := ast.Parsewith(pProgram, pc.NewScanner(source))
	return root, root != nil
}

func (p *Parser) fromAST(root pc.Queryable) ([]pvm.Instruction, error) {
	program := []pvm.Instruction{}

	if root.GetName() != "program" {
		return nil, fmt.Errorf("expected node 'program', found %s", root.GetName())
	}

	for _, line := range root.GetChildren() {
		switch line.GetName() {
		case "comment":
			continue
		default:
			inst, err := p.fromInstructionNode(line)
			if err != nil {
				return nil, err
			}
			program = append(program, inst)
		}
	}

	return program, nil
}

func (p *Parser) fromInstructionNode(node pc.Queryable) (pvm.Instruction, error) {
	children := node.GetChildren()
	if len(children) == 0 {
		return nil, fmt.Errorf("empty instruction node %s", node.GetName())
	}

	name := trimComma(children[0].GetValue())
	operands := children[1:]

	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unrecognized mnemonic %q", name)
	}

	values := make([]string, len(operands))
	for i, o := range operands {
		values[i] = trimComma(o.GetValue())
	}

	return build(name, values)
}

func trimComma(s string) string { return strings.TrimSuffix(s, ",") }

func operandValue(tok string) pvm.Operand {
	if v, err := strconv.ParseFloat(tok, 64); err == nil && strings.ContainsAny(tok, ".") {
		return pvm.NewConstant(pvm.Float64ToU64(v))
	}
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return pvm.NewConstant(pvm.Int64ToU64(v))
	}
	return pvm.NewVariable(tok)
}
