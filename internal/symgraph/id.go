package symgraph

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"symgraph/internal/decl"
)

// Precise symbol identifiers. IDs are minted once per declaration and
// cached on the walker; identical trees always mint identical IDs, which is
// what node and edge deduplication key on.
//
// Shape: "s:<module>:<path>" where path joins the enclosing names with ".".
// Members declared inside an extension take the extended nominal's path, so
// an extension member and a direct member with the same name collapse to
// the same entity. Extension block symbols use the "s:e:" prefix.
// Synthesized members append "::SYNTHESIZED::" plus the base nominal's ID.

const synthesizedInfix = "::SYNTHESIZED::"

// preciseID returns the stable identifier for a declaration.
func (w *Walker) preciseID(id decl.DeclID) string {
	if s, ok := w.ids[id]; ok {
		return s
	}
	s := w.mintID(id)
	w.ids[id] = s
	return s
}

// synthesizedID returns the identifier for decl synthesized onto base.
func (w *Walker) synthesizedID(id, base decl.DeclID) string {
	return w.preciseID(id) + synthesizedInfix + w.preciseID(base)
}

func (w *Walker) mintID(id decl.DeclID) string {
	tree := w.tree
	d := tree.Decl(id)
	if d.Kind == decl.KindExtension {
		// The block identifier hangs off the extension's own module so two
		// modules extending the same nominal stay distinct.
		return "s:e:" + normName(tree.ModuleName(d.Module)) + ":" + w.pathOf(id)
	}
	return "s:" + normName(tree.ModuleName(d.Module)) + ":" + w.pathOf(id)
}

func (w *Walker) pathOf(id decl.DeclID) string {
	tree := w.tree
	var segs []string
	for cur := id; cur.IsValid(); {
		d := tree.Decl(cur)
		switch {
		case d.Kind == decl.KindExtension:
			// Path through the extended nominal, not the extension.
			cur = d.Extended
		case d.Kind.IsValue():
			segs = append(segs, segmentFor(tree, cur))
			cur = d.Parent
		default:
			cur = d.Parent
		}
	}
	// Built leaf-first.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, ".")
}

func segmentFor(tree *decl.Tree, id decl.DeclID) string {
	d := tree.Decl(id)
	switch d.Kind {
	case decl.KindInitializer:
		return "init"
	case decl.KindSubscript:
		return "subscript"
	}
	return normName(tree.Name(id))
}

func normName(s string) string {
	if norm.NFC.IsNormalString(s) {
		return s
	}
	return norm.NFC.String(s)
}
