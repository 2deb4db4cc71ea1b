package decl

import (
	"testing"
)

func TestBuilderLinksChildrenAndRoots(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	m := b.AddModule("Main", false)
	parent := b.AddDecl(Decl{Kind: KindStruct, Name: b.Strings().Intern("S"), Module: m})
	child := b.AddDecl(Decl{Kind: KindFunction, Name: b.Strings().Intern("f"), Module: m, Parent: parent})
	tree := b.Build()

	roots := tree.Roots()
	if len(roots) != 1 || roots[0] != parent {
		t.Fatalf("expected single root %v, got %v", parent, roots)
	}
	kids := tree.Decl(parent).Children
	if len(kids) != 1 || kids[0] != child {
		t.Fatalf("expected child %v linked under parent, got %v", child, kids)
	}
	if got := tree.Decl(child).Parent; got != parent {
		t.Fatalf("child parent back-reference wrong: %v", got)
	}
}

func TestModulesEqualCollapsesForeignCounterpart(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	m := b.AddModule("Kit", false)
	native := b.AddModule("Kit", true)
	other := b.AddModule("Other", false)
	tree := b.Build()

	if m == native {
		t.Fatalf("foreign counterpart must get its own entry")
	}
	if !tree.ModulesEqual(m, native, true) {
		t.Fatalf("name-only comparison should collapse the native counterpart")
	}
	if tree.ModulesEqual(m, native, false) {
		t.Fatalf("strict comparison should keep the native counterpart distinct")
	}
	if tree.ModulesEqual(m, other, true) {
		t.Fatalf("different names never compare equal")
	}
}

func TestAddModuleReusesSameEntry(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	first := b.AddModule("Kit", false)
	second := b.AddModule("Kit", false)
	if first != second {
		t.Fatalf("expected module reuse, got %v and %v", first, second)
	}
}

func TestModuleByName(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	b.AddModule("Main", false)
	x := b.AddModule("X", false)
	tree := b.Build()

	if got := tree.ModuleByName("X"); got != x {
		t.Fatalf("ModuleByName(X) = %v, want %v", got, x)
	}
	if got := tree.ModuleByName("Missing"); got.IsValid() {
		t.Fatalf("missing module should resolve to NoModuleID, got %v", got)
	}
}

func TestBuilderRejectsUseAfterBuild(t *testing.T) {
	b := NewBuilder(Hints{}, nil)
	b.AddModule("Main", false)
	b.Build()

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on builder reuse after Build")
		}
	}()
	b.AddModule("Late", false)
}

func TestInternerDeduplicates(t *testing.T) {
	in := NewInterner()
	a := in.Intern("name")
	b := in.Intern("name")
	if a != b {
		t.Fatalf("expected identical IDs for identical strings")
	}
	if got := in.MustLookup(a); got != "name" {
		t.Fatalf("lookup mismatch: %q", got)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatalf("out-of-range ID must not resolve")
	}
}

func TestAvailabilityRequiresPlatform(t *testing.T) {
	if (Availability{Unavailable: true}).UnavailableOrObsoleted() {
		t.Fatalf("an attribute without a platform never prunes")
	}
	if !(Availability{Platform: "linux", Obsoleted: true}).UnavailableOrObsoleted() {
		t.Fatalf("obsoleted on a platform must prune")
	}
}
