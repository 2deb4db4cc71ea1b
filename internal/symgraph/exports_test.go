package symgraph

import (
	"testing"

	"symgraph/internal/decl"
)

func TestExportFilterModuleMembership(t *testing.T) {
	f := newFixture()
	f.module("Main")
	x := f.module("X")
	y := f.module("Y")
	tree := f.b.Build()

	filter := NewExportFilter(tree, []string{"X"}, nil)
	if !filter.IsExportedImportedModule(x) {
		t.Fatalf("X should be a re-exported module")
	}
	if filter.IsExportedImportedModule(y) {
		t.Fatalf("Y should not be a re-exported module")
	}
}

func TestConsideredExportedImportedChecksContainer(t *testing.T) {
	f := newFixture()
	f.module("Main")
	x := f.module("X")
	xs := f.decl(decl.KindStruct, "XS", x, decl.NoDeclID)
	member := f.decl(decl.KindFunction, "m", x, xs)
	tree := f.b.Build()

	filter := NewExportFilter(tree, nil, map[string][]decl.DeclID{"X": {xs}})
	if !filter.IsConsideredExportedImported(member) {
		t.Fatalf("member of a qualified re-export should count as re-exported")
	}
	if filter.IsQualifiedExportedImport(member) {
		t.Fatalf("the member itself is not in the qualified set")
	}
}

func TestConsideredExportedImportedChecksEnclosingExtension(t *testing.T) {
	f := newFixture()
	main := f.module("Main")
	x := f.module("X")
	xs := f.decl(decl.KindStruct, "XS", x, decl.NoDeclID)
	ext := f.extension(main, xs)
	member := f.decl(decl.KindFunction, "added", main, ext)
	tree := f.b.Build()

	filter := NewExportFilter(tree, nil, map[string][]decl.DeclID{"X": {xs}})
	if !filter.IsConsideredExportedImported(member) {
		t.Fatalf("member of an extension of a re-exported nominal should count")
	}

	empty := NewExportFilter(tree, nil, nil)
	if empty.IsConsideredExportedImported(member) {
		t.Fatalf("no re-exports configured, nothing should match")
	}
}

func TestNilExportFilterMatchesNothing(t *testing.T) {
	f := newFixture()
	x := f.module("X")
	xs := f.decl(decl.KindStruct, "XS", x, decl.NoDeclID)
	f.b.Build()

	var filter *ExportFilter
	if filter.IsExportedImportedModule(x) || filter.IsQualifiedExportedImport(xs) || filter.IsConsideredExportedImported(xs) {
		t.Fatalf("nil filter must match nothing")
	}
}
