package symgraph

import (
	"symgraph/internal/decl"
)

type edgeKey struct {
	kind   RelationKind
	source string
	target string
}

// SymbolGraph holds the nodes and edges attributed to one module. The main
// graph belongs to the module under analysis; extended-module subgraphs set
// DeclaringModule to the foreign module they were split out for. Nodes are
// keyed by symbol ID, edges by (kind, source, target); both preserve
// insertion order for deterministic output.
type SymbolGraph struct {
	// Module is the module under analysis, shared by every graph of a walk.
	Module decl.ModuleID
	// DeclaringModule is the module whose declarations this graph collects,
	// NoModuleID for the main graph unless an overlay policy set one.
	DeclaringModule decl.ModuleID

	walker    *Walker
	nodes     []Symbol
	nodeIndex map[string]int
	edges     []Relationship
	edgeIndex map[edgeKey]int
	finalized bool
}

func newSymbolGraph(w *Walker, module, declaring decl.ModuleID) *SymbolGraph {
	return &SymbolGraph{
		Module:          module,
		DeclaringModule: declaring,
		walker:          w,
		nodeIndex:       make(map[string]int),
		edgeIndex:       make(map[edgeKey]int),
	}
}

// recordNode adds a symbol to the graph, recording its structural
// relationships alongside. Recording an already-present ID is a no-op;
// the return value reports whether the node was new.
func (g *SymbolGraph) recordNode(sym Symbol) bool {
	g.checkMutable()
	if _, ok := g.nodeIndex[sym.ID]; ok {
		return false
	}
	g.nodeIndex[sym.ID] = len(g.nodes)
	g.nodes = append(g.nodes, sym)
	g.recordDeclRelationships(sym)
	return true
}

// recordEdge adds a typed edge. Duplicate (kind, source, target) triples
// collapse to the first recorded occurrence, keeping its origin.
func (g *SymbolGraph) recordEdge(kind RelationKind, source, target string, origin decl.DeclID) {
	g.checkMutable()
	key := edgeKey{kind: kind, source: source, target: target}
	if _, ok := g.edgeIndex[key]; ok {
		return
	}
	g.edgeIndex[key] = len(g.edges)
	g.edges = append(g.edges, Relationship{
		Kind:   kind,
		Source: source,
		Target: target,
		Origin: origin,
	})
}

// Nodes returns the recorded symbols in insertion order.
// Only valid once the walk has finished.
func (g *SymbolGraph) Nodes() []Symbol { return g.nodes }

// Edges returns the recorded relationships in insertion order.
func (g *SymbolGraph) Edges() []Relationship { return g.edges }

// HasNode reports whether a symbol with the given ID was recorded.
func (g *SymbolGraph) HasNode(id string) bool {
	_, ok := g.nodeIndex[id]
	return ok
}

// IsEmpty reports whether the graph recorded nothing at all.
func (g *SymbolGraph) IsEmpty() bool { return len(g.nodes) == 0 && len(g.edges) == 0 }

func (g *SymbolGraph) finalize() { g.finalized = true }

func (g *SymbolGraph) checkMutable() {
	if g.finalized {
		panic("symgraph: recording into a finalized graph")
	}
}

// isImplicitlyPrivate reports whether the declaration is effectively hidden
// from the public surface: non-public visibility or an underscored name,
// anywhere along its enclosing chain. Extensions defer to their extended
// nominal, structural containers are transparent.
func (g *SymbolGraph) isImplicitlyPrivate(id decl.DeclID) bool {
	tree := g.walker.tree
	for cur := id; cur.IsValid(); {
		d := tree.Decl(cur)
		if d.Kind == decl.KindExtension {
			cur = d.Extended
			continue
		}
		if d.Kind.IsValue() {
			if d.Visibility != decl.VisPublic {
				return true
			}
			if name := tree.Name(cur); len(name) > 0 && name[0] == '_' {
				return true
			}
		}
		cur = d.Parent
	}
	return false
}

// canIncludeDeclAsNode reports whether the declaration is eligible for node
// recording: a recordable value kind that is not effectively private.
func (g *SymbolGraph) canIncludeDeclAsNode(id decl.DeclID) bool {
	d := g.walker.tree.Decl(id)
	if d == nil || !d.Kind.IsValue() {
		return false
	}
	return !g.isImplicitlyPrivate(id)
}
