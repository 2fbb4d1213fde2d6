// Package driver orchestrates one compilation unit end to end: lex, parse
// (which drives symbol-table construction and TAC emission), write the TAC
// file, optionally verify it round-trips through the TAC-file parser, and
// lower the in-memory TAC into an assembly listing.
package driver

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jakujobi/Ada-Compiler-Construction-sub000/asmgen"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/ctx"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/diag"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/internal/errio"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/lexer"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/parser"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/symtable"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/tac"
	"github.com/jakujobi/Ada-Compiler-Construction-sub000/token"
	"github.com/pkg/errors"
)

// Options configures one Run.
type Options struct {
	InputPath        string
	TACPath          string // empty disables writing a TAC file
	ASMPath          string // empty disables writing an ASM file
	TokenListingPath string // empty disables writing a token-listing file
	VerifyTAC        bool // re-read TACPath and sanity-check the round trip
	BuildTree        bool
	Debug            bool // not read by Run; Summary.Print takes its own debug flag
}

// MaxReportedErrors bounds how many diagnostics Summary prints per phase in
// debug mode.
const MaxReportedErrors = 20

// Summary is the aggregated result of one Run.
type Summary struct {
	Lexical  []diag.Diagnostic
	Syntax   []diag.Diagnostic
	Semantic []diag.Diagnostic

	TokenListing string
	ParseTree    []string

	TACPath string
	ASMPath string
}

// HasErrors reports whether any phase recorded a diagnostic.
func (s Summary) HasErrors() bool {
	return len(s.Lexical) > 0 || len(s.Syntax) > 0 || len(s.Semantic) > 0
}

// Print writes a human-readable report of s to w, showing up to
// MaxReportedErrors diagnostics per phase when debug is true, a bare count
// otherwise. The summary can run to hundreds of lines for a
// badly broken input, so writes go through a sticky-error errio.Writer: a
// mid-report write failure (e.g. a closed pipe) is captured once instead of
// needing a check after every Fprint call.
func (s Summary) Print(w io.Writer, debug bool) error {
	ew := errio.New(w)
	printPhase(ew, "lexical", s.Lexical, debug)
	printPhase(ew, "syntax", s.Syntax, debug)
	printPhase(ew, "semantic", s.Semantic, debug)
	if !s.HasErrors() {
		fmt.Fprintln(ew, "compilation succeeded with no diagnostics")
	}
	return ew.Err
}

func printPhase(w io.Writer, name string, items []diag.Diagnostic, debug bool) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "%d %s error(s):\n", len(items), name)
	shown := items
	if debug && len(shown) > MaxReportedErrors {
		shown = shown[:MaxReportedErrors]
	} else if !debug {
		shown = nil
	}
	for _, d := range shown {
		fmt.Fprintln(w, "  "+d.String())
	}
	if !debug {
		fmt.Fprintln(w, "  (rerun with --debug to see individual diagnostics)")
	} else if len(items) > MaxReportedErrors {
		fmt.Fprintf(w, "  ... and %d more\n", len(items)-MaxReportedErrors)
	}
}

// Run compiles opts.InputPath per opts and returns the aggregated Summary.
// It returns an error only for failures outside the compiler proper
// (reading the source, writing an output file, or a failed VerifyTAC round
// trip); compilation errors are reported through the returned Summary
// instead.
func Run(c *ctx.Context, opts Options) (Summary, error) {
	if c == nil {
		c = ctx.Discard()
	}
	src, err := os.ReadFile(opts.InputPath)
	if err != nil {
		return Summary{}, errors.Wrapf(err, "reading source file %q", opts.InputPath)
	}

	lx := lexer.New(string(src), c.StopOnError)
	toks := lx.Tokenize()

	var popts []parser.Option
	if opts.BuildTree {
		popts = append(popts, parser.WithTree())
	}
	popts = append(popts, parser.WithPanicModeRecovery())
	if c.StopOnError {
		popts = append(popts, parser.WithStopOnError())
	}

	table := symtable.New(c)
	gen := tac.New(c)
	p := parser.New(c, string(src), table, gen, popts...)
	p.Parse()

	sum := Summary{
		Lexical:  lx.Errors.All(),
		Semantic: p.Semantic.All(),
	}
	// The parser's Syntax bag also holds copies of the lexical errors it
	// inherited; those are already reported under Lexical.
	for _, d := range p.Syntax.All() {
		if d.Kind != diag.Lexical {
			sum.Syntax = append(sum.Syntax, d)
		}
	}
	sum.TokenListing = renderTokenListing(toks)
	sum.ParseTree = p.Tree

	if opts.TokenListingPath != "" {
		if err := os.WriteFile(opts.TokenListingPath, []byte(sum.TokenListing), 0o644); err != nil {
			return sum, errors.Wrap(err, "writing token listing")
		}
	}

	if sum.HasErrors() {
		return sum, nil
	}

	if opts.TACPath != "" {
		if err := gen.WriteFile(opts.TACPath); err != nil {
			return sum, errors.Wrap(err, "writing TAC output")
		}
		sum.TACPath = opts.TACPath

		if opts.VerifyTAC {
			if err := verifyTACRoundTrip(opts.TACPath, gen); err != nil {
				return sum, errors.Wrap(err, "verifying TAC round trip")
			}
			c.Log.Debugw("TAC round-trip verification passed", "path", opts.TACPath)
		}
	}

	if opts.ASMPath != "" {
		ag := asmgen.New(c)
		unit := asmgen.FromGenerator(gen, table)
		if err := ag.WriteFile(opts.ASMPath, unit); err != nil {
			return sum, errors.Wrap(err, "writing ASM output")
		}
		sum.ASMPath = opts.ASMPath
	}

	return sum, nil
}

// verifyTACRoundTrip re-reads path and checks that it parses back to the
// same number of instructions the generator holds in memory -- a cheap
// sanity check, not a byte-for-byte comparison, since the TAC-file parser
// legitimately normalizes quoting and whitespace.
func verifyTACRoundTrip(path string, gen *tac.Generator) error {
	instrs, err := tac.ReadFile(path)
	if err != nil {
		return err
	}
	want := len(gen.Instructions()) + len(gen.StringDefinitions()) + 1 // +1 for the "start" line
	if len(instrs) != want {
		return errors.Errorf("round-trip produced %d instructions, expected %d", len(instrs), want)
	}
	return nil
}

func renderTokenListing(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.String())
		b.WriteByte('\n')
	}
	return b.String()
}
