package decl

// Tree is an immutable declaration tree: compact arenas for declarations,
// modules and type references, plus the shared name interner. Build one
// through a Builder; the extraction engine only reads it.
type Tree struct {
	decls   []Decl
	modules []Module
	refs    []TypeRef
	roots   []DeclID
	strings *Interner
}

// Decl returns the node for id, or nil for an invalid ID.
func (t *Tree) Decl(id DeclID) *Decl {
	if !id.IsValid() || int(id) >= len(t.decls) {
		return nil
	}
	return &t.decls[id]
}

// Module returns the module entry for id, or nil for an invalid ID.
func (t *Tree) Module(id ModuleID) *Module {
	if !id.IsValid() || int(id) >= len(t.modules) {
		return nil
	}
	return &t.modules[id]
}

// TypeRef returns the reference for id, or nil for an invalid ID.
func (t *Tree) TypeRef(id TypeRefID) *TypeRef {
	if !id.IsValid() || int(id) >= len(t.refs) {
		return nil
	}
	return &t.refs[id]
}

// Roots returns the top-level declarations in source order.
func (t *Tree) Roots() []DeclID { return t.roots }

// Strings exposes the tree's name interner.
func (t *Tree) Strings() *Interner { return t.strings }

// Name returns the textual name of a declaration, "" for unnamed ones.
func (t *Tree) Name(id DeclID) string {
	d := t.Decl(id)
	if d == nil || d.Name == NoStringID {
		return ""
	}
	return t.strings.MustLookup(d.Name)
}

// ModuleName returns the name of a module, "" for an invalid ID.
func (t *Tree) ModuleName(id ModuleID) string {
	m := t.Module(id)
	if m == nil {
		return ""
	}
	return t.strings.MustLookup(m.Name)
}

// ModulesEqual compares two modules the way attribution does: by name,
// with the foreign-native bit optionally ignored so a module and its
// lower-level native counterpart collapse into one.
func (t *Tree) ModulesEqual(a, b ModuleID, ignoreForeign bool) bool {
	ma, mb := t.Module(a), t.Module(b)
	if ma == nil || mb == nil {
		return false
	}
	if ma.Name != mb.Name {
		return false
	}
	return ignoreForeign || ma.Foreign == mb.Foreign
}

// ModuleByName returns the first module with the given name, or NoModuleID.
func (t *Tree) ModuleByName(name string) ModuleID {
	for i := 1; i < len(t.modules); i++ {
		if t.strings.MustLookup(t.modules[i].Name) == name {
			return ModuleID(i)
		}
	}
	return NoModuleID
}

// LookupPath resolves a dotted name path to a declaration inside the named
// module, descending through nested declarations and extensions. Returns
// NoDeclID when any segment fails to match.
func (t *Tree) LookupPath(moduleName string, names []string) DeclID {
	if len(names) == 0 {
		return NoDeclID
	}
	cur := NoDeclID
	for _, root := range t.roots {
		d := t.Decl(root)
		if t.ModuleName(d.Module) == moduleName && t.Name(root) == names[0] {
			cur = root
			break
		}
	}
	for _, name := range names[1:] {
		if !cur.IsValid() {
			return NoDeclID
		}
		cur = t.childByName(cur, name)
	}
	return cur
}

func (t *Tree) childByName(parent DeclID, name string) DeclID {
	for _, child := range t.Decl(parent).Children {
		if t.Name(child) == name {
			return child
		}
	}
	return NoDeclID
}

// NumDecls reports the number of declarations excluding the sentinel.
func (t *Tree) NumDecls() int { return len(t.decls) - 1 }
