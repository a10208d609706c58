package compiler

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/arnavsurve/minipas/internal/compiler/interpreter"
	"github.com/arnavsurve/minipas/internal/compiler/lexer"
	"github.com/arnavsurve/minipas/internal/compiler/parser"
	"github.com/arnavsurve/minipas/internal/compiler/runtime"
	"github.com/arnavsurve/minipas/internal/compiler/semantic"
)

type fixtureError struct {
	Stage string `yaml:"stage"`
	Kind  string `yaml:"kind"`
}

type fixture struct {
	Name     string         `yaml:"name"`
	Source   string         `yaml:"source"`
	Bindings map[string]any `yaml:"bindings"`
	Error    *fixtureError  `yaml:"error"`
}

func loadFixtures(t *testing.T) []fixture {
	t.Helper()
	file, err := os.Open("testdata/programs.yaml")
	if err != nil {
		t.Fatalf("open fixtures: %v", err)
	}
	defer file.Close()

	var fixtures []fixture
	if err := yaml.NewDecoder(file).Decode(&fixtures); err != nil {
		t.Fatalf("decode fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatalf("no fixtures found")
	}
	return fixtures
}

func expectedBindings(t *testing.T, raw map[string]any) map[string]runtime.Value {
	t.Helper()
	out := make(map[string]runtime.Value, len(raw))
	for name, v := range raw {
		switch n := v.(type) {
		case int:
			out[name] = runtime.Integer(n)
		case float64:
			out[name] = runtime.Real(n)
		default:
			t.Fatalf("binding %s has unsupported fixture type %T", name, v)
		}
	}
	return out
}

// errorKind reports the stage and kind name of a pipeline error.
func errorKind(err error) (string, string) {
	var (
		lexErr  *lexer.Error
		synErr  *parser.Error
		semErr  *semantic.Error
		execErr *interpreter.Error
	)
	switch {
	case errors.As(err, &lexErr):
		return lexErr.Stage(), lexErr.Kind.String()
	case errors.As(err, &synErr):
		return synErr.Stage(), synErr.Kind.String()
	case errors.As(err, &semErr):
		return semErr.Stage(), semErr.Kind.String()
	case errors.As(err, &execErr):
		return execErr.Stage(), execErr.Kind.String()
	default:
		return "unknown", fmt.Sprintf("%T", err)
	}
}

func TestProgramFixtures(t *testing.T) {
	for _, fx := range loadFixtures(t) {
		t.Run(fx.Name, func(t *testing.T) {
			got, err := CompileAndRun(fx.Source, Options{})

			if fx.Error != nil {
				if err == nil {
					t.Fatalf("expected %s/%s error, got bindings %v", fx.Error.Stage, fx.Error.Kind, got)
				}
				stage, kind := errorKind(err)
				if stage != fx.Error.Stage || kind != fx.Error.Kind {
					t.Fatalf("error expected=%s/%s, got=%s/%s (%v)", fx.Error.Stage, fx.Error.Kind, stage, kind, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want := expectedBindings(t, fx.Bindings)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("bindings expected=%v, got=%v", want, got)
			}
		})
	}
}

func TestAnalyzeRunsBeforeEvaluation(t *testing.T) {
	// Evaluation would fail on the division; analysis must fail first.
	prog, err := Compile("PROGRAM p; BEGIN a := 1 DIV 0; b := c END.")
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	_, err = AnalyzeAndRun(prog, Options{})
	var semErr *semantic.Error
	if !errors.As(err, &semErr) {
		t.Fatalf("expected *semantic.Error, got=%T (%v)", err, err)
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	src := "PROGRAM p; VAR a : REAL; BEGIN a := 1 / 3 END."
	first, err := CompileAndRun(src, Options{})
	if err != nil {
		t.Fatalf("CompileAndRun returned error: %v", err)
	}
	second, _ := CompileAndRun(src, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ: %v vs %v", first, second)
	}
}
