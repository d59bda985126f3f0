// Package repl SPDX-License-Identifier: Apache-2.0
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"sumi/internal/errors"
	"sumi/internal/opt"
	"sumi/internal/parser"
	"sumi/internal/semantic"
)

const PROMPT = ">> "

// CONTINUE replaces the prompt while a brace is still open.
const CONTINUE = ".. "

// Start runs the interactive loop. Input is buffered until its braces
// balance, then parsed, validated, run through the default pipeline and
// printed back in optimized form.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)

	var buffer strings.Builder
	depth := 0

	for {
		if depth > 0 {
			fmt.Print(CONTINUE)
		} else {
			fmt.Print(PROMPT)
		}

		scanned := scanner.Scan()
		if !scanned {
			return
		}

		line := scanner.Text()

		if depth == 0 && strings.HasPrefix(strings.TrimSpace(line), ":") {
			if runCommand(strings.TrimSpace(line)) {
				return
			}
			continue
		}

		buffer.WriteString(line)
		buffer.WriteString("\n")
		depth += braceDelta(line)
		if depth > 0 {
			continue
		}

		source := buffer.String()
		buffer.Reset()
		depth = 0

		if strings.TrimSpace(source) == "" {
			continue
		}

		evaluate(source)
	}
}

// braceDelta counts the brace nesting change of one line. Comments are
// stripped first; the language has no string literals to confuse this.
func braceDelta(line string) int {
	if i := strings.Index(line, "//"); i >= 0 {
		line = line[:i]
	}
	delta := 0
	for _, r := range line {
		switch r {
		case '{':
			delta++
		case '}':
			delta--
		}
	}
	return delta
}

// runCommand handles the colon commands and reports whether the loop
// should exit.
func runCommand(command string) bool {
	switch command {
	case ":quit":
		return true
	case ":passes":
		fmt.Printf("default: %s\n", strings.Join(opt.DefaultPassNames(), ", "))
		fmt.Printf("available: %s\n", strings.Join(opt.PassNames(), ", "))
	case ":help":
		fmt.Println("Enter a program; it runs once the braces balance.")
		fmt.Println("  :help    show this help")
		fmt.Println("  :passes  list the optimization passes")
		fmt.Println("  :quit    leave the repl")
	default:
		fmt.Printf("unknown command %s (try :help)\n", command)
	}
	return false
}

func evaluate(source string) {
	program, parseErrs := parser.ParseSource("<repl>", source)
	reporter := errors.NewErrorReporter("<repl>", source)

	for _, e := range parseErrs {
		fmt.Print(reporter.FormatError(e))
	}
	if errors.HasBlockingErrors(parseErrs) {
		return
	}

	diagnostics := semantic.NewAnalyzer().Analyze(program)
	for _, e := range diagnostics {
		fmt.Print(reporter.FormatError(e))
	}
	if errors.HasBlockingErrors(diagnostics) {
		return
	}

	rounds, changed, optDiags := opt.DefaultPipeline().RunToFixpoint(program)
	for _, e := range optDiags {
		fmt.Print(reporter.FormatError(e))
	}

	fmt.Print(program.String())
	if changed {
		color.Green("optimized in %d round(s)", rounds)
	} else {
		color.Green("already optimal")
	}
}
