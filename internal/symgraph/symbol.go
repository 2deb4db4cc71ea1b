package symgraph

import (
	"symgraph/internal/decl"
)

// RelationKind identifies the type of a directed edge between two symbols.
type RelationKind uint8

const (
	RelationInvalid RelationKind = iota
	RelationMemberOf
	RelationConformsTo
	RelationInheritsFrom
	RelationExtensionTo
	RelationDefaultImplementationOf
)

func (k RelationKind) String() string {
	switch k {
	case RelationMemberOf:
		return "memberOf"
	case RelationConformsTo:
		return "conformsTo"
	case RelationInheritsFrom:
		return "inheritsFrom"
	case RelationExtensionTo:
		return "extensionTo"
	case RelationDefaultImplementationOf:
		return "defaultImplementationOf"
	default:
		return "invalid"
	}
}

// Symbol is one recorded entity of a graph. Identity is carried entirely by
// ID: two symbols are the same symbol iff their IDs match, and node
// deduplication works off that. Base is set for synthesized members, the
// nominal they were synthesized onto.
type Symbol struct {
	ID   string
	Decl decl.DeclID
	Base decl.DeclID
}

// IsSynthesized reports whether the symbol was synthesized onto a base type
// rather than declared directly.
func (s Symbol) IsSynthesized() bool { return s.Base.IsValid() }

// Relationship is a typed directed edge. Source and Target are symbol IDs;
// either endpoint may be owned by a different graph than the one holding
// the edge. Origin is the declaration the edge was recorded from, if any.
type Relationship struct {
	Kind   RelationKind
	Source string
	Target string
	Origin decl.DeclID
}
