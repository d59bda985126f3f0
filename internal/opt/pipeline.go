package opt

import (
	"fmt"
	"strings"
	"time"

	"github.com/tliron/commonlog"

	"sumi/internal/ast"
	"sumi/internal/errors"
	"sumi/internal/semantic"
)

var log = commonlog.GetLogger("sumi.opt")

// Pass represents a single optimization transformation
type Pass interface {
	Name() string
	Apply(program *ast.Program) bool // Returns true if changes were made
	Description() string
}

// noticeSource is implemented by passes that skip individual sites when a
// resource limit is hit. The notices are warnings, never errors.
type noticeSource interface {
	Notices() []errors.CompilerError
}

// DefaultMaxRounds caps fixpoint iteration. Hitting the cap is not an
// error; the program is returned as-is.
const DefaultMaxRounds = 16

// Pipeline manages the sequence of optimization passes
type Pipeline struct {
	passes []Pass

	// MaxRounds caps RunToFixpoint.
	MaxRounds int

	// Verify re-runs structural validation after every pass and stops at
	// the first pass that breaks the program.
	Verify bool
}

// NewPipeline creates an empty pipeline with default limits.
func NewPipeline() *Pipeline {
	return &Pipeline{MaxRounds: DefaultMaxRounds}
}

// DefaultPipeline creates a pipeline with the default pass sequence.
func DefaultPipeline() *Pipeline {
	pipeline := NewPipeline()
	for _, name := range DefaultPassNames() {
		pass, ok := NewPass(name)
		if !ok {
			panic("default pass missing from registry: " + name)
		}
		pipeline.AddPass(pass)
	}
	return pipeline
}

// AddPass adds an optimization pass to the pipeline
func (p *Pipeline) AddPass(pass Pass) {
	p.passes = append(p.passes, pass)
}

// Passes returns the registered passes in execution order.
func (p *Pipeline) Passes() []Pass {
	return p.passes
}

// Run executes the pass sequence once. The returned diagnostics carry
// resource-limit notices (warnings) and, with verification enabled, the
// invariant failure of the first pass that produced an invalid program.
func (p *Pipeline) Run(program *ast.Program) (bool, []errors.CompilerError) {
	changed := false
	var diags []errors.CompilerError
	for _, pass := range p.passes {
		start := time.Now()
		passChanged := pass.Apply(program)
		log.Debugf("pass %s: changed=%t in %s", pass.Name(), passChanged, time.Since(start))
		changed = changed || passChanged
		if ns, ok := pass.(noticeSource); ok {
			diags = append(diags, ns.Notices()...)
		}
		if p.Verify {
			if violation, broken := checkInvariants(pass, program); broken {
				diags = append(diags, violation)
				return changed, diags
			}
		}
	}
	return changed, diags
}

// RunToFixpoint repeats the sequence until a full round reports no change
// or MaxRounds is reached, and returns the number of rounds that ran.
func (p *Pipeline) RunToFixpoint(program *ast.Program) (int, bool, []errors.CompilerError) {
	maxRounds := p.MaxRounds
	if maxRounds <= 0 {
		maxRounds = DefaultMaxRounds
	}
	changed := false
	var diags []errors.CompilerError
	for round := 1; round <= maxRounds; round++ {
		roundChanged, roundDiags := p.Run(program)
		diags = append(diags, roundDiags...)
		changed = changed || roundChanged
		if errors.HasBlockingErrors(roundDiags) {
			return round, changed, diags
		}
		if !roundChanged {
			log.Debugf("fixpoint after %d round(s)", round)
			return round, changed, diags
		}
	}
	log.Debugf("round cap %d reached before fixpoint", maxRounds)
	return maxRounds, changed, diags
}

// checkInvariants re-validates the program and pins the first blocking
// diagnostic on the pass that just ran.
func checkInvariants(pass Pass, program *ast.Program) (errors.CompilerError, bool) {
	diags := semantic.NewAnalyzer().Analyze(program)
	for _, d := range diags {
		if d.Level == errors.Error {
			return errors.InvariantViolated(pass.Name(), d), true
		}
	}
	return errors.CompilerError{}, false
}

// passBuilders maps the names accepted by --passes to constructors. Order
// here is the order PassNames lists them in.
var passBuilders = []struct {
	name  string
	build func() Pass
}{
	{"split", func() Pass { return NewSplitter() }},
	{"fold", func() Pass { return NewFolder() }},
	{"inline", func() Pass { return NewInliner() }},
	{"prune", func() Pass { return NewPruner() }},
	{"storesweep", func() Pass { return NewStoreSweeper() }},
	{"remat", func() Pass { return NewRematerializer() }},
	{"deadcode", func() Pass { return NewDeadCodeEliminator() }},
	{"rename", func() Pass { return NewRenamer() }},
}

// NewPass constructs the pass registered under name.
func NewPass(name string) (Pass, bool) {
	for _, b := range passBuilders {
		if b.name == name {
			return b.build(), true
		}
	}
	return nil, false
}

// PassNames lists every registered pass name.
func PassNames() []string {
	names := make([]string, len(passBuilders))
	for i, b := range passBuilders {
		names[i] = b.name
	}
	return names
}

// DefaultPassNames returns the default sequence. fold runs twice: once to
// shrink call sites before inlining and once over the inlined bodies.
func DefaultPassNames() []string {
	return []string{"split", "fold", "inline", "prune", "storesweep", "remat", "fold", "deadcode"}
}

// PassesFromNames builds the pass list for a comma-separated CLI selection.
func PassesFromNames(names []string) ([]Pass, error) {
	passes := make([]Pass, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		pass, ok := NewPass(name)
		if !ok {
			return nil, fmt.Errorf("unknown pass '%s' (available: %s)", name, strings.Join(PassNames(), ", "))
		}
		passes = append(passes, pass)
	}
	return passes, nil
}
