package asttpl_test

import (
	"context"
	"testing"
	"testing/fstest"

	asttpl "github.com/goliatone/go-asttpl"
	"github.com/goliatone/go-asttpl/pkg/ast"
	"github.com/goliatone/go-asttpl/pkg/testsupport"
)

func TestRootPackageEndToEnd(t *testing.T) {
	fsys := fstest.MapFS{
		"wrap.tpl": {Data: []byte("function (VALUE) { return TRANSFORM(VALUE); };")},
	}

	engine := asttpl.New(asttpl.WithFS(fsys), asttpl.WithoutCache())
	if err := engine.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}

	result, err := engine.Instantiate("wrap", asttpl.Placeholders{
		"TRANSFORM": testsupport.Ident("normalize"),
	}, false)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}

	want := "function (VALUE) {\n  return normalize(VALUE);\n}"
	if got := ast.Print(result.Node); got != want {
		t.Fatalf("printed result %q, want %q", got, want)
	}
}

func TestRootParseTemplateRegistersDynamically(t *testing.T) {
	engine := asttpl.New(asttpl.WithFS(fstest.MapFS{}), asttpl.WithoutCache())

	prog, err := asttpl.ParseTemplate("inline", "emit(EVENT);")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := engine.Register("notify", prog); err != nil {
		t.Fatalf("register: %v", err)
	}

	result, err := engine.Instantiate("notify", asttpl.Placeholders{
		"EVENT": testsupport.Str("ready"),
	}, false)
	if err != nil {
		t.Fatalf("instantiate: %v", err)
	}
	if got := ast.Print(result.Node); got != `emit("ready")` {
		t.Fatalf("printed result %q, want %q", got, `emit("ready")`)
	}
}
