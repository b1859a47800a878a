package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/teris-io/cli"

	"pine/pkg/pvm"
	"pine/pkg/pvm/asmtext"
)

var Description = strings.ReplaceAll(`
The PVM runner parses a .pvm text assembly file and dispatches it directly,
bypassing the Pine compiler front end. It is the standalone entry point for
the bytecode the Pine compiler itself emits.
`, "\n", " ")

var Pvm = cli.New(Description).
	WithArg(cli.NewArg("input", "The PVM (.pvm) text assembly file to parse and run").
		WithType(cli.TypeString)).
	WithOption(cli.NewOption("memory", "Heap size in bytes made available to the PVM (default 65536)").
		WithType(cli.TypeString)).
	WithAction(Handler)

func Handler(args []string, options map[string]string) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "ERROR: Not enough arguments provided, use --help\n")
		return -1
	}

	input, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to open input file: %s\n", err)
		return -1
	}
	defer input.Close()

	parser := asmtext.NewParser(input)
	program, err := parser.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to complete 'parsing' pass: %s\n", err)
		return -1
	}

	memory := uint64(65536)
	if raw, given := options["memory"]; given && raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Invalid --memory value: %s\n", err)
			return -1
		}
		memory = parsed
	}

	env := pvm.NewEnvironment(memory, os.Stdin, os.Stdout)
	runErr := pvm.Run(program, env)

	exit, ok := runErr.(*pvm.ExitError)
	if !ok {
		fmt.Fprintf(os.Stderr, "ERROR: Unable to complete 'dispatch' pass: %s\n", runErr)
		return -1
	}
	return int(exit.Code)
}

func main() { os.Exit(Pvm.Run(os.Args, os.Stdout)) }
