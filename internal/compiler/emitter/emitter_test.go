package emitter

import (
	"reflect"
	"strings"
	"testing"

	"github.com/arnavsurve/minipas/internal/compiler/ast"
	"github.com/arnavsurve/minipas/internal/compiler/interpreter"
	"github.com/arnavsurve/minipas/internal/compiler/parser"
)

func mustParse(t *testing.T, input string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v\n%s", err, input)
	}
	return prog
}

func TestEmitCanonicalLayout(t *testing.T) {
	input := `PROGRAM Main; VAR a, b : INTEGER; x : REAL;
PROCEDURE Alpha(n : INTEGER; r : REAL); VAR y : INTEGER;
BEGIN y := n END;
PROCEDURE Beta; BEGIN END;
BEGIN a := 10; b := a + 20 * (3 - 1); BEGIN x := 7 / 2; END; END.`

	expected := `PROGRAM Main;
VAR
  a : INTEGER;
  b : INTEGER;
  x : REAL;
PROCEDURE Alpha(n : INTEGER; r : REAL);
  VAR
    y : INTEGER;
  BEGIN
    y := n
  END;
PROCEDURE Beta;
  BEGIN
  END;
BEGIN
  a := 10;
  b := a + 20 * (3 - 1);
  BEGIN
    x := 7 / 2
  END
END.
`
	if got := Emit(mustParse(t, input)); got != expected {
		t.Errorf("Emit mismatch\nexpected:\n%s\ngot:\n%s", expected, got)
	}
}

func TestExpressionParentheses(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 - (2 - 3)", "1 - (2 - 3)"},
		{"(1 - 2) - 3", "1 - 2 - 3"},
		{"8 DIV (4 / 2)", "8 DIV (4 / 2)"},
		{"-(a + b)", "-(a + b)"},
		{"-a * b", "-a * b"},
		{"a * -b", "a * -b"},
		{"((a))", "a"},
		{"2.50 + +1", "2.50 + +1"},
	}
	for _, tt := range tests {
		prog := mustParse(t, "PROGRAM p; BEGIN r := "+tt.input+" END.")
		value := prog.Block.Compound.Statements[0].(*ast.Assign).Value
		if got := Expression(value); got != tt.expected {
			t.Errorf("%q expected=%q, got=%q", tt.input, tt.expected, got)
		}
	}
}

func TestEmitIsStable(t *testing.T) {
	sources := []string{
		"PROGRAM p; BEGIN END.",
		"PROGRAM p; VAR a : INTEGER; BEGIN a := - - 3; ; a := -(a - 1) DIV 2 END.",
		`PROGRAM p; VAR g : REAL;
		 PROCEDURE o(a, b : INTEGER); PROCEDURE i; BEGIN g := 1.5 END; BEGIN END;
		 BEGIN BEGIN BEGIN g := 1 / 4 END END END.`,
	}
	for _, src := range sources {
		first := Emit(mustParse(t, src))
		second := Emit(mustParse(t, first))
		if first != second {
			t.Errorf("Emit is not stable\nfirst:\n%s\nsecond:\n%s", first, second)
		}
	}
}

func TestEmitPreservesResults(t *testing.T) {
	src := "PROGRAM p; VAR a, b, c : INTEGER; BEGIN a := 7; b := -a DIV 2 - (1 - a); c := a * -(b + 1) END."
	want, err := interpreter.Run(mustParse(t, src))
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got, err := interpreter.Run(mustParse(t, Emit(mustParse(t, src))))
	if err != nil {
		t.Fatalf("Run of emitted source returned error: %v", err)
	}
	if !reflect.DeepEqual(want, got) {
		t.Errorf("results differ: original=%v emitted=%v", want, got)
	}
}

func TestEmitLongProgram(t *testing.T) {
	const n = 5000
	var src strings.Builder
	src.WriteString("PROGRAM Long; VAR a : INTEGER; BEGIN a := 0")
	for i := 0; i < n; i++ {
		src.WriteString("; a := a + 1")
	}
	src.WriteString(" END.")
	prog := mustParse(t, src.String())

	e := NewEmitter()
	got := e.Emit(prog)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	// PROGRAM, VAR, decl, BEGIN, n+1 statements, END.
	if len(lines) != n+6 {
		t.Fatalf("expected %d lines, got=%d", n+6, len(lines))
	}
	if lines[len(lines)-2] != "  a := a + 1" || lines[len(lines)-1] != "END." {
		t.Errorf("unexpected tail %q", lines[len(lines)-2:])
	}
	if again := e.Emit(prog); again != got {
		t.Errorf("reused Emitter produced different output")
	}
}
