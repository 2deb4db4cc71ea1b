package symgraph

import (
	"symgraph/internal/decl"
)

// recordDeclRelationships derives the structural edges implied by a freshly
// recorded node: membership, stated conformances/inheritance of nominals,
// and default implementations contributed through protocol extensions.
// Synthesized members get their membership edge from the synthesizing call
// site instead.
func (g *SymbolGraph) recordDeclRelationships(sym Symbol) {
	if sym.IsSynthesized() {
		return
	}
	d := g.walker.tree.Decl(sym.Decl)
	if d == nil || d.Kind == decl.KindExtension {
		// Extension block symbols only carry the edges the walker records.
		return
	}

	g.recordMemberRelationship(sym, d)
	if d.Kind.IsNominal() {
		g.recordInheritanceRelationships(sym, d)
	}
	g.recordDefaultImplementationRelationships(sym, d)
}

// recordMemberRelationship links a symbol to its nearest recordable owner.
// Members of extensions hang off the extended nominal.
func (g *SymbolGraph) recordMemberRelationship(sym Symbol, d *decl.Decl) {
	tree := g.walker.tree
	owner := d.Parent
	if p := tree.Decl(owner); p != nil && p.Kind == decl.KindExtension {
		owner = p.Extended
	}
	if !owner.IsValid() || !g.canIncludeDeclAsNode(owner) {
		return
	}
	g.recordEdge(RelationMemberOf, sym.ID, g.walker.preciseID(owner), sym.Decl)
}

// recordInheritanceRelationships turns a nominal's stated inheritance list
// into edges: a class reference on a class becomes inheritsFrom, everything
// else expands through the conformance closure into conformsTo.
func (g *SymbolGraph) recordInheritanceRelationships(sym Symbol, d *decl.Decl) {
	w := g.walker
	tree := w.tree

	var conformanceRefs []decl.TypeRefID
	for _, ref := range d.Inherited {
		r := tree.TypeRef(ref)
		if r != nil && !r.IsComposition() {
			if target := tree.Decl(r.Nominal); target != nil && target.Kind == decl.KindClass {
				if d.Kind == decl.KindClass {
					g.recordEdge(RelationInheritsFrom, sym.ID, w.preciseID(r.Nominal), sym.Decl)
				}
				continue
			}
		}
		conformanceRefs = append(conformanceRefs, ref)
	}
	for _, proto := range w.expandConformances(conformanceRefs) {
		g.recordEdge(RelationConformsTo, sym.ID, w.preciseID(proto), sym.Decl)
	}
}

// recordDefaultImplementationRelationships links a member declared in a
// protocol extension to the like-named requirement of the extended protocol
// or any protocol it inherits from.
func (g *SymbolGraph) recordDefaultImplementationRelationships(sym Symbol, d *decl.Decl) {
	w := g.walker
	tree := w.tree

	parent := tree.Decl(d.Parent)
	if parent == nil || parent.Kind != decl.KindExtension {
		return
	}
	extended := tree.Decl(parent.Extended)
	if extended == nil || extended.Kind != decl.KindProtocol {
		return
	}
	if d.Name == decl.NoStringID && d.Kind != decl.KindInitializer && d.Kind != decl.KindSubscript {
		return
	}

	protocols := append([]decl.DeclID{parent.Extended}, w.expandConformances(extended.Inherited)...)
	for _, proto := range protocols {
		for _, req := range tree.Decl(proto).Children {
			r := tree.Decl(req)
			if r.Kind != d.Kind || r.Name != d.Name || req == sym.Decl {
				continue
			}
			g.recordEdge(RelationDefaultImplementationOf, sym.ID, w.preciseID(req), sym.Decl)
			return
		}
	}
}

// recordConformanceSynthesizedMembers records the public members a foreign
// extension implicitly contributes to the extended type: each becomes a
// synthesized symbol based on the extended nominal, plus a membership edge
// onto the extension-or-extended-type source symbol.
func (g *SymbolGraph) recordConformanceSynthesizedMembers(source Symbol, ext decl.DeclID) {
	w := g.walker
	tree := w.tree
	extDecl := tree.Decl(ext)
	base := extDecl.Extended

	for _, member := range extDecl.Children {
		m := tree.Decl(member)
		if !m.Kind.IsValue() || m.Availability.UnavailableOrObsoleted() {
			continue
		}
		if !g.canIncludeDeclAsNode(member) {
			continue
		}
		sym := Symbol{ID: w.synthesizedID(member, base), Decl: member, Base: base}
		g.recordNode(sym)
		g.recordEdge(RelationMemberOf, sym.ID, source.ID, member)
	}
}
