// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"
	"github.com/xyproto/env/v2"

	"sumi/internal/errors"
	"sumi/internal/opt"
	"sumi/internal/parser"
	"sumi/internal/semantic"
)

func main() {
	passSelection := flag.String("passes", env.Str("SUMI_PASSES", ""), "comma-separated pass selection (empty runs the standard pipeline)")
	rounds := flag.Int("rounds", env.Int("SUMI_MAX_ROUNDS", opt.DefaultMaxRounds), "fixpoint round cap")
	inlineMaxSize := flag.Int("inline-max-size", env.Int("SUMI_INLINE_MAX_SIZE", 0), "inline size budget in statements (0 uses the pass default)")
	inlineMaxDepth := flag.Int("inline-max-depth", env.Int("SUMI_INLINE_MAX_DEPTH", 0), "nested inline budget (0 uses the pass default)")
	tidyNames := flag.Bool("tidy-names", false, "restore generated names to their stems after optimizing")
	verify := flag.Bool("verify", false, "re-validate the program after every pass")
	verbose := flag.Bool("verbose", false, "log pass activity")
	noColor := flag.Bool("no-color", env.Bool("NO_COLOR"), "disable colored output")
	outputPath := flag.String("o", "", "write the optimized program to this file instead of stdout")
	flag.Usage = usage
	flag.Parse()

	if *noColor {
		color.NoColor = true
	}

	// Configure logging (1 = debug level, nil = default logger)
	if *verbose {
		commonlog.Configure(1, nil)
	} else {
		commonlog.Configure(0, nil)
	}

	path, source, err := readInput(flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read input: %v\n", err)
		os.Exit(1)
	}

	startTime := time.Now()

	program, parseErrs := parser.ParseSource(path, source)

	// Create error reporter
	errorReporter := errors.NewErrorReporter(path, source)

	// Report parser errors
	for _, e := range parseErrs {
		fmt.Print(errorReporter.FormatError(e))
	}
	if errors.HasBlockingErrors(parseErrs) {
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	// Validate before optimizing; warnings print but do not stop the run
	diagnostics := semantic.NewAnalyzer().Analyze(program)
	for _, e := range diagnostics {
		fmt.Print(errorReporter.FormatError(e))
	}
	if errors.HasBlockingErrors(diagnostics) {
		color.Red("Compilation failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	pipeline := opt.DefaultPipeline()
	if *passSelection != "" {
		passes, err := opt.PassesFromNames(strings.Split(*passSelection, ","))
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		pipeline = opt.NewPipeline()
		for _, pass := range passes {
			pipeline.AddPass(pass)
		}
	}
	if *tidyNames {
		renamer, ok := opt.NewPass("rename")
		if !ok {
			panic("rename pass missing from registry")
		}
		pipeline.AddPass(renamer)
	}
	pipeline.MaxRounds = *rounds
	pipeline.Verify = *verify

	for _, pass := range pipeline.Passes() {
		inliner, ok := pass.(*opt.Inliner)
		if !ok {
			continue
		}
		if *inlineMaxSize > 0 {
			inliner.MaxSize = *inlineMaxSize
		}
		if *inlineMaxDepth > 0 {
			inliner.MaxDepth = *inlineMaxDepth
		}
	}

	roundsRan, _, optDiags := pipeline.RunToFixpoint(program)

	// Report limit notices and, under --verify, invariant failures
	for _, e := range optDiags {
		fmt.Print(errorReporter.FormatError(e))
	}
	if errors.HasBlockingErrors(optDiags) {
		color.Red("Optimization failed after %s", formatDuration(time.Since(startTime)))
		os.Exit(1)
	}

	rendered := program.String()
	if *outputPath != "" {
		if err := os.WriteFile(*outputPath, []byte(rendered), 0o644); err != nil {
			fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", *outputPath, err)
			os.Exit(1)
		}
	} else {
		fmt.Print(rendered)
	}

	color.Green("Successfully optimized %s in %d round(s), %s", path, roundsRan, formatDuration(time.Since(startTime)))
}

// readInput returns the display path and contents of the selected input:
// a named file, or stdin when the argument is missing or "-".
func readInput(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		source, err := io.ReadAll(os.Stdin)
		return "<stdin>", string(source), err
	}
	source, err := os.ReadFile(args[0])
	return args[0], string(source), err
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: sumi-opt [flags] <file.sumi>")
	fmt.Fprintln(os.Stderr, "Reads stdin when the file argument is missing or '-'.")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Flags:")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Passes: %s\n", strings.Join(opt.PassNames(), ", "))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
