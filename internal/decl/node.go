package decl

// Visibility describes how widely a declaration is exposed.
type Visibility uint8

const (
	VisPrivate Visibility = iota
	VisInternal
	VisPublic
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisInternal:
		return "internal"
	default:
		return "private"
	}
}

// Availability carries the platform availability attribute of a declaration.
// The zero value means "available everywhere".
type Availability struct {
	Platform    string
	Unavailable bool
	Obsoleted   bool
}

// UnavailableOrObsoleted reports whether the declaration is gone on its
// stated platform. An attribute without a platform never prunes.
func (a Availability) UnavailableOrObsoleted() bool {
	return a.Platform != "" && (a.Unavailable || a.Obsoleted)
}

// Module describes one module the tree draws declarations from. Foreign
// marks a native (non-source-language) module; a module and its foreign
// counterpart share a name and are collapsed by name-only comparison.
type Module struct {
	Name    StringID
	Foreign bool
}

// TypeRef is one entry of a stated inheritance list: either a nominal
// reference (Nominal set, Members nil) or a composition of further
// references (Members set, Nominal zero).
type TypeRef struct {
	Nominal DeclID
	Members []TypeRefID
}

// IsComposition reports whether the ref denotes a protocol composition.
func (r TypeRef) IsComposition() bool { return r.Members != nil }

// Decl is one node of the declaration tree. Parent is a back-reference to
// the enclosing context and is never owned. Extended and Inherited are only
// meaningful for the kinds that carry them (extensions, nominals, classes).
type Decl struct {
	Kind         Kind
	Name         StringID
	Module       ModuleID
	Parent       DeclID
	Children     []DeclID
	Visibility   Visibility
	Availability Availability

	// Extension payload: the extended nominal.
	Extended DeclID
	// Stated inheritance entries, in source order. Used by nominals
	// (superclass + protocol conformances) and by extensions.
	Inherited []TypeRefID
}
