package symgraph

import (
	"symgraph/internal/decl"
)

// ExportFilter answers re-export membership questions for attribution. Both
// sets are computed before the walk starts and never change during it.
type ExportFilter struct {
	tree *decl.Tree
	// Wholesale re-exported modules, by name.
	modules map[string]struct{}
	// Individually re-exported declarations, keyed by source module name.
	qualified map[string]map[decl.DeclID]struct{}
}

// NewExportFilter builds a filter over pre-computed re-export sets.
func NewExportFilter(tree *decl.Tree, modules []string, qualified map[string][]decl.DeclID) *ExportFilter {
	f := &ExportFilter{
		tree:      tree,
		modules:   make(map[string]struct{}, len(modules)),
		qualified: make(map[string]map[decl.DeclID]struct{}, len(qualified)),
	}
	for _, m := range modules {
		f.modules[m] = struct{}{}
	}
	for mod, decls := range qualified {
		set := make(map[decl.DeclID]struct{}, len(decls))
		for _, d := range decls {
			set[d] = struct{}{}
		}
		f.qualified[mod] = set
	}
	return f
}

// IsExportedImportedModule reports whether the module was wholesale
// re-exported by the module under analysis.
func (f *ExportFilter) IsExportedImportedModule(m decl.ModuleID) bool {
	if f == nil {
		return false
	}
	_, ok := f.modules[f.tree.ModuleName(m)]
	return ok
}

// IsQualifiedExportedImport reports whether the declaration itself appears
// in any qualified re-export list.
func (f *ExportFilter) IsQualifiedExportedImport(id decl.DeclID) bool {
	if f == nil {
		return false
	}
	for _, set := range f.qualified {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

// isFromExportedImportedModule combines the qualified and wholesale checks
// for a single declaration.
func (f *ExportFilter) isFromExportedImportedModule(id decl.DeclID) bool {
	if f == nil {
		return false
	}
	d := f.tree.Decl(id)
	if d == nil {
		return false
	}
	return f.IsQualifiedExportedImport(id) || f.IsExportedImportedModule(d.Module)
}

// IsConsideredExportedImported walks the enclosing-context chain looking
// for any re-export hit: the declaration itself, its nearest value
// container, then an enclosing extension's extended nominal.
func (f *ExportFilter) IsConsideredExportedImported(id decl.DeclID) bool {
	if f == nil {
		return false
	}
	if f.isFromExportedImportedModule(id) {
		return true
	}

	d := f.tree.Decl(id)
	if d == nil {
		return false
	}
	ctx := d.Parent
	if ctx.IsValid() {
		if c := f.tree.Decl(ctx); c.Kind.IsValue() && f.isFromExportedImportedModule(ctx) {
			return true
		}
	}

	// Extensions of re-exported nominals count too.
	extended := decl.NoDeclID
	for ctx.IsValid() && !extended.IsValid() {
		c := f.tree.Decl(ctx)
		if c.Kind == decl.KindExtension {
			extended = c.Extended
		} else {
			ctx = c.Parent
		}
	}
	if extended.IsValid() && f.isFromExportedImportedModule(extended) {
		return true
	}
	return false
}
