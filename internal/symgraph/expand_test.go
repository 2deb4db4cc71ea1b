package symgraph

import (
	"testing"

	"symgraph/internal/decl"
)

func TestExpandFollowsProtocolInheritance(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	p := f.decl(decl.KindProtocol, "P", main, decl.NoDeclID)
	q := f.decl(decl.KindProtocol, "Q", main, decl.NoDeclID)
	f.inherit(q, p)
	refs := []decl.TypeRefID{f.b.AddNominalRef(q)}
	w := NewWalker(f.b.Build(), main, nil, Options{})

	got := w.expandConformances(refs)

	want := map[decl.DeclID]bool{p: false, q: false}
	for _, id := range got {
		if _, ok := want[id]; !ok {
			t.Fatalf("unexpected protocol %v in expansion", id)
		}
		want[id] = true
	}
	for id, seen := range want {
		if !seen {
			t.Fatalf("protocol %v missing from expansion", id)
		}
	}
}

func TestExpandDiamondYieldsEachProtocolOnce(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	base := f.decl(decl.KindProtocol, "Base", main, decl.NoDeclID)
	left := f.decl(decl.KindProtocol, "Left", main, decl.NoDeclID)
	f.inherit(left, base)
	right := f.decl(decl.KindProtocol, "Right", main, decl.NoDeclID)
	f.inherit(right, base)
	refs := []decl.TypeRefID{f.b.AddNominalRef(left), f.b.AddNominalRef(right)}
	w := NewWalker(f.b.Build(), main, nil, Options{})

	got := w.expandConformances(refs)

	if len(got) != 3 {
		t.Fatalf("expected 3 distinct protocols, got %d (%v)", len(got), got)
	}
}

func TestExpandNestedCompositions(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	a := f.decl(decl.KindProtocol, "A", main, decl.NoDeclID)
	b := f.decl(decl.KindProtocol, "B", main, decl.NoDeclID)
	c := f.decl(decl.KindProtocol, "C", main, decl.NoDeclID)
	inner := f.b.AddCompositionRef(f.b.AddNominalRef(b), f.b.AddNominalRef(c))
	outer := f.b.AddCompositionRef(f.b.AddNominalRef(a), inner)
	w := NewWalker(f.b.Build(), main, nil, Options{})

	got := w.expandConformances([]decl.TypeRefID{outer})

	if len(got) != 3 {
		t.Fatalf("expected 3 protocols from nested composition, got %d", len(got))
	}
}

func TestExpandDeterministicOrder(t *testing.T) {
	build := func() ([]decl.DeclID, []decl.DeclID) {
		f := newFixture()
		main := f.module("Main")
		base := f.decl(decl.KindProtocol, "Base", main, decl.NoDeclID)
		mid := f.decl(decl.KindProtocol, "Mid", main, decl.NoDeclID)
		f.inherit(mid, base)
		top := f.decl(decl.KindProtocol, "Top", main, decl.NoDeclID)
		f.inherit(top, mid)
		refs := []decl.TypeRefID{f.b.AddNominalRef(top)}
		w := NewWalker(f.b.Build(), main, nil, Options{})
		return w.expandConformances(refs), []decl.DeclID{base, mid, top}
	}
	first, _ := build()
	second, _ := build()
	if len(first) != len(second) {
		t.Fatalf("expansion length differs across runs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("expansion order differs at %d: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestExpandRejectsClassEntry(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	c := f.decl(decl.KindClass, "C", main, decl.NoDeclID)
	refs := []decl.TypeRefID{f.b.AddNominalRef(c)}
	w := NewWalker(f.b.Build(), main, nil, Options{})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on class entry in conformance list")
		}
	}()
	w.expandConformances(refs)
}
