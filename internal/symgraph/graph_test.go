package symgraph

import (
	"testing"

	"symgraph/internal/decl"
)

func TestRecordNodeIsIdempotent(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	s := f.decl(decl.KindStruct, "S", main, decl.NoDeclID)
	w := NewWalker(f.b.Build(), main, nil, Options{})
	g := w.MainGraph()

	sym := w.symbolFor(s)
	if !g.recordNode(sym) {
		t.Fatalf("first recording should report a new node")
	}
	if g.recordNode(sym) {
		t.Fatalf("second recording should be a no-op")
	}
	if len(g.Nodes()) != 1 {
		t.Fatalf("expected exactly one node, got %d", len(g.Nodes()))
	}
}

func TestRecordEdgeKeepsFirstOrigin(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	a := f.decl(decl.KindStruct, "A", main, decl.NoDeclID)
	b := f.decl(decl.KindStruct, "B", main, decl.NoDeclID)
	w := NewWalker(f.b.Build(), main, nil, Options{})
	g := w.MainGraph()

	g.recordEdge(RelationConformsTo, w.preciseID(a), w.preciseID(b), a)
	g.recordEdge(RelationConformsTo, w.preciseID(a), w.preciseID(b), b)

	if len(g.Edges()) != 1 {
		t.Fatalf("expected duplicate edge to collapse, got %d edges", len(g.Edges()))
	}
	if got := g.Edges()[0].Origin; got != a {
		t.Fatalf("expected first-seen origin %v, got %v", a, got)
	}
}

func TestRecordEdgeDistinguishesKinds(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	a := f.decl(decl.KindStruct, "A", main, decl.NoDeclID)
	b := f.decl(decl.KindStruct, "B", main, decl.NoDeclID)
	w := NewWalker(f.b.Build(), main, nil, Options{})
	g := w.MainGraph()

	g.recordEdge(RelationConformsTo, w.preciseID(a), w.preciseID(b), decl.NoDeclID)
	g.recordEdge(RelationMemberOf, w.preciseID(a), w.preciseID(b), decl.NoDeclID)

	if len(g.Edges()) != 2 {
		t.Fatalf("edges of different kinds must not collapse, got %d", len(g.Edges()))
	}
}

func TestFinalizedGraphRejectsRecording(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	s := f.decl(decl.KindStruct, "S", main, decl.NoDeclID)
	w := NewWalker(f.b.Build(), main, nil, Options{})
	w.Walk()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when recording into a finalized graph")
		}
	}()
	w.MainGraph().recordNode(w.symbolFor(s))
}

func TestImplicitlyPrivateWalksEnclosingChain(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	outer := f.b.AddDecl(decl.Decl{
		Kind:       decl.KindStruct,
		Name:       f.b.Strings().Intern("Outer"),
		Module:     main,
		Visibility: decl.VisInternal,
	})
	inner := f.decl(decl.KindStruct, "Inner", main, outer)
	w := NewWalker(f.b.Build(), main, nil, Options{})
	g := w.MainGraph()

	if !g.isImplicitlyPrivate(inner) {
		t.Fatalf("public member of a non-public type must be implicitly private")
	}
	if g.canIncludeDeclAsNode(inner) {
		t.Fatalf("implicitly private declarations are not recordable")
	}
}
