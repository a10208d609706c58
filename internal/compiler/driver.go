package compiler

import (
	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/interpreter"
	"github.com/arnavsurve/minipas/internal/compiler/parser"
	"github.com/arnavsurve/minipas/internal/compiler/runtime"
	"github.com/arnavsurve/minipas/internal/compiler/semantic"
)

// Options configures analysis and evaluation. The zero value is ready to use.
type Options struct {
	Tracer semantic.Tracer
}

// Compile lexes and parses source. The returned error is a *lexer.Error or
// *parser.Error.
func Compile(source string) (*ast.Program, error) {
	return parser.Parse(source)
}

// Analyze runs the scope-resolution pass. Errors are *semantic.Error.
func Analyze(prog *ast.Program, opts Options) (*semantic.Analysis, error) {
	return semantic.Analyze(prog, opts.Tracer)
}

// AnalyzeAndRun checks prog and, if it is valid, evaluates it. It returns the
// complete post-execution store. Errors are *semantic.Error or
// *interpreter.Error.
func AnalyzeAndRun(prog *ast.Program, opts Options) (map[string]runtime.Value, error) {
	if _, err := Analyze(prog, opts); err != nil {
		return nil, err
	}
	return interpreter.Run(prog)
}

// CompileAndRun is Compile followed by AnalyzeAndRun.
func CompileAndRun(source string, opts Options) (map[string]runtime.Value, error) {
	prog, err := Compile(source)
	if err != nil {
		return nil, err
	}
	return AnalyzeAndRun(prog, opts)
}
