package interpreter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/arnavsurve/minipas/internal/compiler/parser"
	"github.com/arnavsurve/minipas/internal/compiler/runtime"
	"github.com/arnavsurve/minipas/internal/compiler/token"
)

func run(t *testing.T, input string) (map[string]runtime.Value, error) {
	t.Helper()
	prog, err := parser.Parse(input)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return Run(prog)
}

// evalExpr evaluates "r := <expr>" with the given integer bindings in scope.
func evalExpr(t *testing.T, expr string) runtime.Value {
	t.Helper()
	bindings, err := run(t, "PROGRAM p; BEGIN r := "+expr+" END.")
	if err != nil {
		t.Fatalf("%q returned error: %v", expr, err)
	}
	return bindings["r"]
}

func TestEndToEndBindings(t *testing.T) {
	bindings, err := run(t, `
PROGRAM Main;
VAR a, b : INTEGER;
BEGIN
  a := 10;
  b := a + 20;
END.`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := map[string]runtime.Value{"a": runtime.Integer(10), "b": runtime.Integer(30)}
	if !reflect.DeepEqual(bindings, want) {
		t.Errorf("bindings expected=%v, got=%v", want, bindings)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		expr     string
		expected runtime.Value
	}{
		{"7 / 2", runtime.Real(3.5)},
		{"6 / 3", runtime.Real(2)},
		{"7 DIV 2", runtime.Integer(3)},
		{"-7 DIV 2", runtime.Integer(-4)},
		{"7 DIV -2", runtime.Integer(-4)},
		{"7.5 DIV 2", runtime.Real(3)},
		{"1 + 2 * 3", runtime.Integer(7)},
		{"(1 + 2) * 3", runtime.Integer(9)},
		{"10 - 4 - 3", runtime.Integer(3)},
		{"1 + 0.5", runtime.Real(1.5)},
		{"2 * 1.5", runtime.Real(3)},
		{"2.5 - 1", runtime.Real(1.5)},
		{"-3", runtime.Integer(-3)},
		{"+3", runtime.Integer(3)},
		{"- -3", runtime.Integer(3)},
		{"-2.5", runtime.Real(-2.5)},
		{"-(1 + 2) * 2", runtime.Integer(-6)},
	}

	for _, tt := range tests {
		got := evalExpr(t, tt.expr)
		if got != tt.expected {
			t.Errorf("%q expected=%v (%T), got=%v (%T)", tt.expr, tt.expected, tt.expected, got, got)
		}
	}
}

func TestAssignmentOverwrites(t *testing.T) {
	bindings, err := run(t, "PROGRAM p; BEGIN x := 1; x := x + 0.5; BEGIN y := x * 2 END END.")
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if bindings["x"] != runtime.Real(1.5) {
		t.Errorf("x expected=1.5, got=%v", bindings["x"])
	}
	if bindings["y"] != runtime.Real(3) {
		t.Errorf("y expected=3.0, got=%v", bindings["y"])
	}
}

func TestProceduresAreNotExecuted(t *testing.T) {
	bindings, err := run(t, `
PROGRAM p;
VAR a : INTEGER;
PROCEDURE q(n : INTEGER);
BEGIN a := 99 DIV 0 END;
BEGIN a := 1 END.`)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if bindings["a"] != runtime.Integer(1) {
		t.Errorf("a expected=1, got=%v", bindings["a"])
	}
}

func TestDivisionByZero(t *testing.T) {
	tests := []struct {
		input string
		pos   token.Position
	}{
		{"PROGRAM p; BEGIN a := 5 DIV 0 END.", token.Position{Line: 1, Column: 25}},
		{"PROGRAM p; BEGIN a := 5 / 0 END.", token.Position{Line: 1, Column: 25}},
		{"PROGRAM p; BEGIN a := 5.0 / 0.0 END.", token.Position{Line: 1, Column: 27}},
		{"PROGRAM p; BEGIN z := 0; a := 1 / (z * 3) END.", token.Position{Line: 1, Column: 33}},
	}
	for _, tt := range tests {
		_, err := run(t, tt.input)
		var rerr *Error
		if !errors.As(err, &rerr) {
			t.Fatalf("%q: expected *interpreter.Error, got=%v", tt.input, err)
		}
		if rerr.Kind != DivisionByZero {
			t.Errorf("%q: Kind expected=%s, got=%s", tt.input, DivisionByZero, rerr.Kind)
		}
		if rerr.Pos != tt.pos {
			t.Errorf("%q: Pos expected=%s, got=%s", tt.input, tt.pos, rerr.Pos)
		}
	}
}

func TestReadBeforeAssignment(t *testing.T) {
	_, err := run(t, "PROGRAM p; VAR a, b : INTEGER; BEGIN a := b END.")
	var rerr *Error
	if !errors.As(err, &rerr) || rerr.Kind != UnboundVariable {
		t.Fatalf("expected UnboundVariable, got=%v", err)
	}
	if rerr.Name != "b" {
		t.Errorf("Name expected='b', got=%q", rerr.Name)
	}
	if want := (token.Position{Line: 1, Column: 43}); rerr.Pos != want {
		t.Errorf("Pos expected=%s, got=%s", want, rerr.Pos)
	}
}

func TestEvaluateKeepsPartialStore(t *testing.T) {
	prog, err := parser.Parse("PROGRAM p; BEGIN a := 1; b := a DIV 0; c := 3 END.")
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	in := New(nil)
	if err := in.Evaluate(prog); err == nil {
		t.Fatalf("expected an error")
	}
	if got := in.Store().Keys(); !reflect.DeepEqual(got, []string{"a"}) {
		t.Errorf("store keys expected=[a], got=%v", got)
	}
}

func TestDeterministic(t *testing.T) {
	src := "PROGRAM p; BEGIN a := 3; b := a / 4; c := -a DIV 2 END."
	first, err := run(t, src)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, _ := run(t, src)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %v vs %v", i, first, again)
		}
	}
}
