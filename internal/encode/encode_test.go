package encode

import (
	"errors"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"symgraph/internal/decl"
	"symgraph/internal/symgraph"
)

func buildGraphs(t *testing.T) (*decl.Tree, *symgraph.Walker) {
	t.Helper()
	b := decl.NewBuilder(decl.Hints{}, nil)
	main := b.AddModule("Main", false)
	foo := b.AddModule("Foo", false)
	p := b.AddDecl(decl.Decl{Kind: decl.KindProtocol, Name: b.Strings().Intern("P"), Module: main, Visibility: decl.VisPublic})
	ft := b.AddDecl(decl.Decl{Kind: decl.KindStruct, Name: b.Strings().Intern("T"), Module: foo, Visibility: decl.VisPublic})
	ext := b.AddDecl(decl.Decl{Kind: decl.KindExtension, Module: main})
	b.SetExtended(ext, ft)
	b.SetInherited(ext, []decl.TypeRefID{b.AddNominalRef(p)})
	tree := b.Build()

	w := symgraph.NewWalker(tree, main, nil, symgraph.Options{})
	w.Walk()
	return tree, w
}

func TestBuildPayloadAndFilename(t *testing.T) {
	tree, w := buildGraphs(t)

	mainPayload := BuildPayload(tree, w.MainGraph())
	if mainPayload.Module != "Main" || mainPayload.DeclaringModule != "" {
		t.Fatalf("main payload attribution wrong: %+v", mainPayload)
	}
	if Filename(mainPayload, FormatJSON) != "Main.symbols.json" {
		t.Fatalf("main filename = %q", Filename(mainPayload, FormatJSON))
	}

	sub := w.ExtendedGraph("Foo")
	if sub == nil {
		t.Fatalf("expected Foo subgraph")
	}
	subPayload := BuildPayload(tree, sub)
	if subPayload.DeclaringModule != "Foo" {
		t.Fatalf("subgraph declaring module = %q", subPayload.DeclaringModule)
	}
	if Filename(subPayload, FormatMsgpack) != "Main@Foo.symbols.msgpack" {
		t.Fatalf("subgraph filename = %q", Filename(subPayload, FormatMsgpack))
	}
	if len(subPayload.Relationships) == 0 {
		t.Fatalf("subgraph payload lost its conformance edges")
	}
}

func TestMsgpackRoundTrip(t *testing.T) {
	tree, w := buildGraphs(t)
	payload := BuildPayload(tree, w.MainGraph())

	data, err := Marshal(payload, FormatMsgpack)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Module != payload.Module || len(got.Symbols) != len(payload.Symbols) {
		t.Fatalf("round trip lost data: %+v", got)
	}
}

func TestUnmarshalRejectsWrongSchema(t *testing.T) {
	stale := GraphPayload{Schema: Schema + 1, Module: "Main"}
	data, err := msgpack.Marshal(stale)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Unmarshal(data); !errors.Is(err, ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestWriteFileUsesNamingConvention(t *testing.T) {
	tree, w := buildGraphs(t)
	payload := BuildPayload(tree, w.MainGraph())
	dir := t.TempDir()

	path, err := WriteFile(dir, payload, FormatMsgpack)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got.Module != "Main" {
		t.Fatalf("read back module = %q", got.Module)
	}
}
