package decl

import (
	"fmt"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the tree arenas.
type Hints struct{ Decls, Modules, Refs uint }

// Builder accumulates declarations and produces an immutable Tree.
// Index 0 of every arena is reserved for the No*ID sentinels.
type Builder struct {
	decls   []Decl
	modules []Module
	refs    []TypeRef
	roots   []DeclID
	strings *Interner
	modByID map[StringID]ModuleID
	frozen  bool
}

// NewBuilder creates a builder with optional capacity hints.
// If strings is nil, a fresh interner is allocated.
func NewBuilder(h Hints, strings *Interner) *Builder {
	declCap, err := safecast.Conv[uint32](h.Decls)
	if err != nil {
		panic(fmt.Errorf("decl capacity overflow: %w", err))
	}
	if strings == nil {
		strings = NewInterner()
	}
	return &Builder{
		decls:   make([]Decl, 1, declCap+1),
		modules: make([]Module, 1, h.Modules+1),
		refs:    make([]TypeRef, 1, h.Refs+1),
		strings: strings,
		modByID: make(map[StringID]ModuleID, h.Modules),
	}
}

// Strings exposes the builder's interner.
func (b *Builder) Strings() *Interner { return b.strings }

// AddModule registers a module by name, reusing an existing entry with the
// same name and foreign bit.
func (b *Builder) AddModule(name string, foreign bool) ModuleID {
	b.checkMutable()
	nameID := b.strings.Intern(name)
	if id, ok := b.modByID[nameID]; ok && b.modules[id].Foreign == foreign {
		return id
	}
	value, err := safecast.Conv[uint32](len(b.modules))
	if err != nil {
		panic(fmt.Errorf("module arena overflow: %w", err))
	}
	id := ModuleID(value)
	b.modules = append(b.modules, Module{Name: nameID, Foreign: foreign})
	if _, ok := b.modByID[nameID]; !ok {
		b.modByID[nameID] = id
	}
	return id
}

// AddDecl allocates a declaration node. A valid parent links the node into
// the parent's child list; otherwise the node becomes a root.
func (b *Builder) AddDecl(d Decl) DeclID {
	b.checkMutable()
	value, err := safecast.Conv[uint32](len(b.decls))
	if err != nil {
		panic(fmt.Errorf("decl arena overflow: %w", err))
	}
	id := DeclID(value)
	b.decls = append(b.decls, d)
	if d.Parent.IsValid() {
		parent := &b.decls[d.Parent]
		parent.Children = append(parent.Children, id)
	} else {
		b.roots = append(b.roots, id)
	}
	return id
}

// AddNominalRef allocates a type reference pointing at a nominal decl.
func (b *Builder) AddNominalRef(target DeclID) TypeRefID {
	return b.addRef(TypeRef{Nominal: target})
}

// AddCompositionRef allocates a composition over the given member refs.
// An empty composition is legal and expands to nothing.
func (b *Builder) AddCompositionRef(members ...TypeRefID) TypeRefID {
	if members == nil {
		members = []TypeRefID{}
	}
	return b.addRef(TypeRef{Members: members})
}

func (b *Builder) addRef(r TypeRef) TypeRefID {
	b.checkMutable()
	value, err := safecast.Conv[uint32](len(b.refs))
	if err != nil {
		panic(fmt.Errorf("type ref arena overflow: %w", err))
	}
	b.refs = append(b.refs, r)
	return TypeRefID(value)
}

// SetInherited replaces the stated inheritance list of a declaration.
// Used by loaders that resolve references after allocating all nodes.
func (b *Builder) SetInherited(id DeclID, refs []TypeRefID) {
	b.checkMutable()
	if !id.IsValid() || int(id) >= len(b.decls) {
		panic("decl: SetInherited on invalid decl")
	}
	b.decls[id].Inherited = refs
}

// SetExtended sets the extended nominal of an extension declaration.
func (b *Builder) SetExtended(id, extended DeclID) {
	b.checkMutable()
	if !id.IsValid() || int(id) >= len(b.decls) {
		panic("decl: SetExtended on invalid decl")
	}
	b.decls[id].Extended = extended
}

// Build freezes the builder and returns the finished tree. The builder
// must not be used afterwards.
func (b *Builder) Build() *Tree {
	b.checkMutable()
	b.frozen = true
	return &Tree{
		decls:   b.decls,
		modules: b.modules,
		refs:    b.refs,
		roots:   b.roots,
		strings: b.strings,
	}
}

func (b *Builder) checkMutable() {
	if b.frozen {
		panic("decl: builder used after Build")
	}
}
