package template

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asttpl/internal/parser"
	"github.com/goliatone/go-asttpl/pkg/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()

	prog, err := parser.Parse(source)
	if err != nil {
		t.Fatalf("parse %q: %v", source, err)
	}
	ast.Sanitize(prog)
	return prog
}

func TestSubstituteExpressionPositions(t *testing.T) {
	prog := mustParse(t, "var x = wrap(VALUE); return x + EXTRA;")

	used := substitute(prog, Placeholders{
		"VALUE": &ast.NumberLit{Value: 10, Raw: "10"},
		"EXTRA": &ast.Identifier{Name: "offset"},
	})

	want := mustParse(t, "var x = wrap(10); return x + offset;")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
	if len(used) != 2 {
		t.Fatalf("used = %v, want both placeholders", used)
	}
}

func TestSubstituteStatementPosition(t *testing.T) {
	prog := mustParse(t, "if (COND) { BODY }")

	body := mustParse(t, "return fallback();").Body[0]
	substitute(prog, Placeholders{
		"COND": &ast.BoolLit{Value: true},
		"BODY": body,
	})

	want := mustParse(t, "if (true) { return fallback(); }")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
}

func TestSubstituteExpressionFragmentInStatementSlot(t *testing.T) {
	prog := mustParse(t, "{ SLOT }")

	substitute(prog, Placeholders{
		"SLOT": &ast.CallExpr{Callee: &ast.Identifier{Name: "fill"}},
	})

	want := mustParse(t, "{ fill(); }")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
}

func TestSubstituteFragmentNotRescanned(t *testing.T) {
	// The fragment names the same placeholder; insertion must be verbatim,
	// not recursive.
	prog := mustParse(t, "ID;")

	substitute(prog, Placeholders{
		"ID": &ast.Identifier{Name: "ID"},
	})

	want := mustParse(t, "ID;")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
}

func TestSubstituteFragmentPlaceholdersInsertedVerbatim(t *testing.T) {
	prog := mustParse(t, "run(TASK);")

	substitute(prog, Placeholders{
		"TASK": &ast.CallExpr{Callee: &ast.Identifier{Name: "make"}, Args: []ast.Expr{&ast.Identifier{Name: "NAME"}}},
		"NAME": &ast.StringLit{Value: "intruder"},
	})

	// NAME inside the inserted fragment must survive untouched.
	want := mustParse(t, `run(make(NAME));`)
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
}

func TestSubstituteNameSlotsTakeIdentifierFragments(t *testing.T) {
	prog := mustParse(t, "var NAME = init();\nobj.PROP;\nfunction (ARG) { return ARG; };")

	used := substitute(prog, Placeholders{
		"NAME": &ast.Identifier{Name: "counter"},
		"PROP": &ast.Identifier{Name: "field"},
		"ARG":  &ast.Identifier{Name: "input"},
	})

	want := mustParse(t, "var counter = init();\nobj.field;\nfunction (input) { return input; };")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("substituted tree (-want +got):\n%s", diff)
	}
	if len(used) != 3 {
		t.Fatalf("used = %v, want all three placeholders", used)
	}
}

func TestSubstituteNameSlotRejectsNonIdentifierFragment(t *testing.T) {
	// Only an identifier fits a name slot; other fragments leave the name
	// untouched and unrecorded.
	prog := mustParse(t, "config.KEY;")

	used := substitute(prog, Placeholders{
		"KEY": &ast.StringLit{Value: "nope"},
	})

	want := mustParse(t, "config.KEY;")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("property slot was rewritten (-want +got):\n%s", diff)
	}
	if len(used) != 0 {
		t.Fatalf("used = %v, want none", used)
	}
}

func TestSubstituteStatementFragmentInExpressionSlotLeavesIdentifier(t *testing.T) {
	prog := mustParse(t, "take(SLOT);")

	used := substitute(prog, Placeholders{
		"SLOT": &ast.ReturnStmt{},
	})

	want := mustParse(t, "take(SLOT);")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("expression slot accepted a statement (-want +got):\n%s", diff)
	}
	if len(used) != 0 {
		t.Fatalf("used = %v, want none", used)
	}
}

func TestSubstituteProgramFragmentCoercions(t *testing.T) {
	// A one-statement program fragment collapses into the slot; a
	// multi-statement one becomes a block in statement position.
	prog := mustParse(t, "BODY;")
	substitute(prog, Placeholders{
		"BODY": mustParse(t, "a(); b();"),
	})
	want := mustParse(t, "{ a(); b(); }")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("multi-statement fragment (-want +got):\n%s", diff)
	}

	prog = mustParse(t, "take(ARG);")
	substitute(prog, Placeholders{
		"ARG": mustParse(t, "compute();"),
	})
	want = mustParse(t, "take(compute());")
	if diff := cmp.Diff(want, prog); diff != "" {
		t.Fatalf("single-expression fragment (-want +got):\n%s", diff)
	}
}

func TestSubstituteLeavesNoTransientFlags(t *testing.T) {
	prog := mustParse(t, "first(A); second(B);")

	substitute(prog, Placeholders{
		"A": &ast.NumberLit{Value: 1, Raw: "1"},
		"B": &ast.NumberLit{Value: 2, Raw: "2"},
	})

	ast.Inspect(prog, func(n ast.Node) bool {
		if *n.Meta() != (ast.Base{}) {
			t.Fatalf("node %s kept transient state %+v", n.Kind(), *n.Meta())
		}
		return true
	})
}
