package template_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-asttpl/internal/parser"
	"github.com/goliatone/go-asttpl/pkg/ast"
	"github.com/goliatone/go-asttpl/pkg/template"
)

func TestParseTemplateSanitizesTree(t *testing.T) {
	prog, err := template.ParseTemplate("greeting.tpl", "hello(NAME);\nreturn true;")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	ast.Inspect(prog, func(n ast.Node) bool {
		if *n.Meta() != (ast.Base{}) {
			t.Fatalf("node %s kept parse metadata %+v", n.Kind(), *n.Meta())
		}
		return true
	})
}

func TestParseTemplateStableAcrossParses(t *testing.T) {
	const source = "if (READY) { start(); }"

	first, err := template.ParseTemplate("a.tpl", source)
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := template.ParseTemplate("b.tpl", source)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("parses of identical text differ (-first +second):\n%s", diff)
	}
}

func TestParseTemplatePrependsLocation(t *testing.T) {
	_, err := template.ParseTemplate("templates/broken.tpl", "var = 1;")
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if !strings.HasPrefix(err.Error(), "template: parse templates/broken.tpl: ") {
		t.Fatalf("error %q does not lead with the template location", err)
	}

	// The underlying parser error stays reachable, position included.
	var perr *parser.Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %v does not wrap *parser.Error", err)
	}
	if perr.Line != 1 || perr.Col != 5 {
		t.Fatalf("error at %d:%d, want 1:5", perr.Line, perr.Col)
	}
}
