package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/teris-io/cli"

	"pine/pkg/codegen"
	"pine/pkg/parser"
	"pine/pkg/pvm"
	"pine/pkg/sem"
)

var Description = strings.ReplaceAll(`
Pine compiles and runs a .p source file end to end: lexing, parsing,
semantic analysis, code generation to PVM bytecode, and dispatch all happen
in a single invocation. Only a single source file is supported; cross-file
imports are rejected.
`, "\n", " ")

var Pine = cli.New(Description).
	WithArg(cli.NewArg("input", "The Pine (.p) source file to compile and run").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("memory", "Heap size in bytes made available to the PVM (default 65536)").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("stdin", "Reads the program's stdin from this file instead of the terminal").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("stdout", "Writes the program's stdout to this file instead of the terminal").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "ERROR: Not enough arguments provided, use --help\n")
		return -1
	}
	if len(args) > 1 {
		err := &parser.Error{Msg: "cross-file imports are not supported"}
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err)
		return -1
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to open input file: %s\n", err)
		return -1
	}

	prog, err := parser.Parse(string(content))
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	if err := sem.Analyze(prog); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to complete 'semantic analysis' pass: %s\n", err)
		return -1
	}

	program := codegen.Generate(prog)

	memory := uint64(65536)
	if raw, given := options["memory"]; given && raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Invalid --memory value: %s\n", err)
			return -1
		}
		memory = parsed
	}

	stdin := io.Reader(os.Stdin)
	if path, given := options["stdin"]; given && path != "" {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Unable to open --stdin file: %s\n", err)
			return -1
		}
		defer f.Close()
		stdin = f
	}

	stdout := io.Writer(os.Stdout)
	if path, given := options["stdout"]; given && path != "" {
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Unable to open --stdout file: %s\n", err)
			return -1
		}
		defer f.Close()
		stdout = f
	}

	env := pvm.NewEnvironment(memory, stdin, stdout)
	runErr := pvm.Run(program, env)

	exit, ok := runErr.(*pvm.ExitError)
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to complete 'dispatch' pass: %s\n", runErr)
		return -1
	}
	return int(exit.Code)
}

func main() { os.Exit(Pine.Run(os.Args, os.Stdout)) }
