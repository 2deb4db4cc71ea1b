package symgraph

import (
	"fmt"

	"symgraph/internal/decl"
)

// expandConformances flattens a stated inheritance list into the full set
// of protocols it implies, following protocol inheritance and spreading
// protocol compositions. Two worklists drive the expansion: compositions
// drain first, each member re-classified as protocol or nested composition;
// then one protocol at a time joins the result and contributes its own
// stated inheritance. Both lists empty terminates the loop, which holds as
// long as the protocol-inheritance graph upstream is acyclic.
//
// Entries must resolve to a protocol or a composition. Anything else is a
// caller contract violation - conformance lists reaching this point have had
// class references filtered out already.
func (w *Walker) expandConformances(refs []decl.TypeRefID) []decl.DeclID {
	tree := w.tree

	var protocols []decl.DeclID
	var unexpandedProtocols []decl.DeclID
	var unexpandedCompositions []decl.TypeRefID
	seen := make(map[decl.DeclID]struct{})

	classify := func(id decl.TypeRefID) {
		r := tree.TypeRef(id)
		if r == nil {
			panic("symgraph: invalid type ref in conformance list")
		}
		if r.IsComposition() {
			unexpandedCompositions = append(unexpandedCompositions, id)
			return
		}
		target := tree.Decl(r.Nominal)
		if target == nil || target.Kind != decl.KindProtocol {
			panic(fmt.Sprintf("symgraph: conformance entry resolves to %v, want protocol or composition",
				targetKind(target)))
		}
		unexpandedProtocols = append(unexpandedProtocols, r.Nominal)
	}

	for _, ref := range refs {
		classify(ref)
	}

	for len(unexpandedCompositions) > 0 || len(unexpandedProtocols) > 0 {
		if n := len(unexpandedCompositions); n > 0 {
			comp := unexpandedCompositions[n-1]
			unexpandedCompositions = unexpandedCompositions[:n-1]
			for _, member := range tree.TypeRef(comp).Members {
				classify(member)
			}
			continue
		}
		n := len(unexpandedProtocols)
		proto := unexpandedProtocols[n-1]
		unexpandedProtocols = unexpandedProtocols[:n-1]
		if _, ok := seen[proto]; ok {
			continue
		}
		seen[proto] = struct{}{}
		for _, inherited := range tree.Decl(proto).Inherited {
			classify(inherited)
		}
		protocols = append(protocols, proto)
	}
	return protocols
}

func targetKind(d *decl.Decl) decl.Kind {
	if d == nil {
		return decl.KindInvalid
	}
	return d.Kind
}
