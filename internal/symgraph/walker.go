package symgraph

import (
	"symgraph/internal/decl"
)

// Options configure one extraction walk.
type Options struct {
	// EmitExtensionBlockSymbols materializes cross-module extensions as
	// their own nodes instead of folding their edges into the extended type.
	EmitExtensionBlockSymbols bool
	// DeclaringModule names an overlay module whose declarations collapse
	// into the main graph, for modules layered on top of a primary one.
	// Empty disables the policy.
	DeclaringModule string
}

// Walker runs a single-threaded depth-first extraction over one declaration
// tree and owns every graph it builds. Attribution decisions and minted
// symbol IDs are cached per walker, so independent runs share no state.
type Walker struct {
	tree    *decl.Tree
	module  decl.ModuleID
	opts    Options
	exports *ExportFilter

	main          *SymbolGraph
	extended      map[string]*SymbolGraph
	extendedNames []string
	ids           map[decl.DeclID]string
	walked        bool
}

// NewWalker prepares a walker for the given tree and module under analysis.
// exports may be nil when the module re-exports nothing.
func NewWalker(tree *decl.Tree, module decl.ModuleID, exports *ExportFilter, opts Options) *Walker {
	w := &Walker{
		tree:     tree,
		module:   module,
		opts:     opts,
		exports:  exports,
		extended: make(map[string]*SymbolGraph),
		ids:      make(map[decl.DeclID]string),
	}
	declaring := decl.NoModuleID
	if opts.DeclaringModule != "" {
		declaring = tree.ModuleByName(opts.DeclaringModule)
	}
	w.main = newSymbolGraph(w, module, declaring)
	return w
}

// MainGraph returns the graph of the module under analysis.
func (w *Walker) MainGraph() *SymbolGraph { return w.main }

// ExtendedGraphs returns the per-module subgraphs in creation order.
func (w *Walker) ExtendedGraphs() []*SymbolGraph {
	out := make([]*SymbolGraph, 0, len(w.extendedNames))
	for _, name := range w.extendedNames {
		out = append(out, w.extended[name])
	}
	return out
}

// ExtendedGraph returns the subgraph for the named module, if one was built.
func (w *Walker) ExtendedGraph(name string) *SymbolGraph { return w.extended[name] }

// Walk traverses the whole tree depth-first and finalizes every graph.
// A walker runs exactly once.
func (w *Walker) Walk() {
	if w.walked {
		panic("symgraph: walker reused")
	}
	w.walked = true
	for _, root := range w.tree.Roots() {
		w.walk(root)
	}
	w.main.finalize()
	for _, name := range w.extendedNames {
		w.extended[name].finalize()
	}
}

func (w *Walker) walk(id decl.DeclID) {
	if !w.visit(id) {
		return
	}
	for _, child := range w.tree.Decl(id).Children {
		w.walk(child)
	}
}

// moduleGraphFor resolves which graph a declaration belongs to. The
// enclosing-context chain is walked outward, each enclosing extension
// redirecting to the module that declares the extended type; the resulting
// module then runs through the attribution rules in order, falling through
// to a per-module subgraph created on first use.
func (w *Walker) moduleGraphFor(id decl.DeclID) *SymbolGraph {
	tree := w.tree
	d := tree.Decl(id)
	mod := d.Module

	extendedNominal := decl.NoDeclID
	ctx := d.Parent
	for ctx.IsValid() {
		c := tree.Decl(ctx)
		mod = c.Module
		switch {
		case c.Kind.IsNominal():
			ctx = c.Parent
		case c.Kind == decl.KindExtension:
			extended := tree.Decl(c.Extended)
			if extended == nil {
				panic("symgraph: extension without extended nominal")
			}
			if !extendedNominal.IsValid() {
				extendedNominal = c.Extended
			}
			mod = extended.Module
			ctx = extended.Parent
		default:
			ctx = decl.NoDeclID
		}
	}

	// A module and its foreign-native counterpart count as the same module.
	if tree.ModulesEqual(mod, w.module, true) {
		return w.main
	}
	// Overlay modules already appear as extensions of their declaring
	// module; actual extensions of that module go into the main graph.
	if w.main.DeclaringModule.IsValid() && tree.ModulesEqual(w.main.DeclaringModule, mod, true) {
		return w.main
	}
	// Module and declaration checked separately: the enclosing extension
	// can come from a different module than the declaration itself.
	if w.exports.IsExportedImportedModule(mod) || w.exports.IsQualifiedExportedImport(id) {
		return w.main
	}
	if extendedNominal.IsValid() {
		if w.exports.isFromExportedImportedModule(extendedNominal) {
			return w.main
		}
	} else if w.exports.IsConsideredExportedImported(id) {
		return w.main
	}

	name := tree.ModuleName(mod)
	if sg, ok := w.extended[name]; ok {
		return sg
	}
	sg := newSymbolGraph(w, w.module, mod)
	w.extended[name] = sg
	w.extendedNames = append(w.extendedNames, name)
	return sg
}

// visit handles one declaration and reports whether to descend into its
// children.
func (w *Walker) visit(id decl.DeclID) bool {
	tree := w.tree
	d := tree.Decl(id)

	if d.Availability.UnavailableOrObsoleted() {
		return false
	}

	// Structural-only kinds are never recorded, always descended into.
	if !d.Kind.IsValue() && d.Kind != decl.KindExtension {
		return true
	}

	sg := w.moduleGraphFor(id)

	if d.Kind == decl.KindExtension {
		return w.visitExtension(id, d)
	}

	if !sg.canIncludeDeclAsNode(id) {
		return true
	}

	// A member declared in an extension of a foreign type belongs with that
	// type's own graph, emitted separately.
	if parent := tree.Decl(d.Parent); parent != nil && parent.Kind == decl.KindExtension {
		if extended := parent.Extended; extended.IsValid() {
			extendedModule := tree.Decl(extended).Module
			if extendedModule != w.module {
				extendedSG := w.moduleGraphFor(extended)
				extendedSG.recordNode(w.symbolFor(id))
				return true
			}
		}
	}

	sg.recordNode(w.symbolFor(id))
	return true
}

func (w *Walker) visitExtension(id decl.DeclID, d *decl.Decl) bool {
	tree := w.tree
	extended := d.Extended
	if !extended.IsValid() {
		panic("symgraph: extension without extended nominal")
	}
	extendedDecl := tree.Decl(extended)
	extendedSG := w.moduleGraphFor(extended)

	// Effectively private or vanished extended types contribute nothing,
	// but their members still get visited.
	if extendedSG.isImplicitlyPrivate(id) {
		return true
	}
	if extendedDecl.Availability.UnavailableOrObsoleted() {
		return true
	}

	// Only extensions of types from other modules materialize as extension
	// blocks; local extensions fold into the extended nominal directly.
	asBlock := w.opts.EmitExtensionBlockSymbols &&
		tree.ModuleName(d.Module) != tree.ModuleName(extendedDecl.Module)

	var source Symbol
	if asBlock {
		source = Symbol{ID: w.preciseID(id), Decl: id}
		extendedSG.recordNode(source)
		extendedSG.recordEdge(RelationExtensionTo, source.ID, w.preciseID(extended), id)
	} else {
		// The extended nominal itself is recorded elsewhere for local types.
		source = w.symbolFor(extended)
	}

	if len(d.Inherited) > 0 {
		for _, proto := range w.expandConformances(d.Inherited) {
			extendedSG.recordEdge(RelationConformsTo, source.ID, w.preciseID(proto), id)
		}
		// Extending an external type can also establish synthesized members.
		if extendedDecl.Module != w.module {
			extendedSG.recordConformanceSynthesizedMembers(source, id)
		}
	}
	return true
}

func (w *Walker) symbolFor(id decl.DeclID) Symbol {
	return Symbol{ID: w.preciseID(id), Decl: id}
}
