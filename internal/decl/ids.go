package decl

type (
	// DeclID identifies a declaration node in the tree arena.
	DeclID uint32
	// ModuleID identifies a module in the tree arena.
	ModuleID uint32
	// TypeRefID identifies an inheritance/conformance type reference.
	TypeRefID uint32
)

const (
	// NoDeclID marks the absence of a declaration reference.
	NoDeclID DeclID = 0
	// NoModuleID marks the absence of a module reference.
	NoModuleID ModuleID = 0
	// NoTypeRefID marks the absence of a type reference.
	NoTypeRefID TypeRefID = 0
)

func (id DeclID) IsValid() bool    { return id != NoDeclID }
func (id ModuleID) IsValid() bool  { return id != NoModuleID }
func (id TypeRefID) IsValid() bool { return id != NoTypeRefID }
