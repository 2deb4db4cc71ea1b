// Package declfile reads declaration trees from JSON files. The real
// producer of a declaration tree is a compiler front-end; this loader gives
// the CLI and tests a materialized stand-in with the same shape.
package declfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"symgraph/internal/decl"
)

var (
	// ErrNoModules indicates a document without a modules list.
	ErrNoModules = errors.New("declaration file declares no modules")
)

type document struct {
	Modules []fileModule `json:"modules"`
	Decls   []fileNode   `json:"decls"`
}

type fileModule struct {
	Name    string `json:"name"`
	Foreign bool   `json:"foreign"`
}

type fileNode struct {
	Kind         string            `json:"kind"`
	Name         string            `json:"name"`
	Module       string            `json:"module"`
	Visibility   string            `json:"visibility"`
	Availability *fileAvailability `json:"availability"`
	Extends      string            `json:"extends"`
	Inherited    []fileRef         `json:"inherited"`
	Members      []fileNode        `json:"members"`
}

type fileAvailability struct {
	Platform    string `json:"platform"`
	Unavailable bool   `json:"unavailable"`
	Obsoleted   bool   `json:"obsoleted"`
}

// fileRef is either a dotted nominal path ("Main.Q") or a composition
// object {"composition": [...]}. Bare JSON strings are accepted for the
// common case.
type fileRef struct {
	Path        string    `json:"path"`
	Composition []fileRef `json:"composition"`
}

func (r *fileRef) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		r.Path = s
		return nil
	}
	type plain fileRef
	return json.Unmarshal(data, (*plain)(r))
}

// pendingRef defers inheritance resolution until every decl is allocated.
type pendingRef struct {
	id      decl.DeclID
	refs    []fileRef
	extends string
}

type loader struct {
	b       *decl.Builder
	modules map[string]decl.ModuleID
	// Dotted module-qualified name path -> decl, for reference resolution.
	byPath  map[string]decl.DeclID
	pending []pendingRef
}

// LoadFile reads and parses a declaration tree document.
func LoadFile(path string) (*decl.Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tree, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tree, nil
}

// Parse builds a tree from raw JSON.
func Parse(data []byte) (*decl.Tree, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse declaration JSON: %w", err)
	}
	if len(doc.Modules) == 0 {
		return nil, ErrNoModules
	}

	l := &loader{
		b:       decl.NewBuilder(decl.Hints{Decls: uint(len(doc.Decls))}, nil),
		modules: make(map[string]decl.ModuleID, len(doc.Modules)),
		byPath:  make(map[string]decl.DeclID),
	}
	for _, m := range doc.Modules {
		if m.Name == "" {
			return nil, errors.New("module with empty name")
		}
		l.modules[m.Name] = l.b.AddModule(m.Name, m.Foreign)
	}
	for i := range doc.Decls {
		if _, err := l.allocate(&doc.Decls[i], decl.NoDeclID, "", ""); err != nil {
			return nil, err
		}
	}
	if err := l.resolve(); err != nil {
		return nil, err
	}
	return l.b.Build(), nil
}

// allocate adds one node and its members, indexing named nodes under their
// module-qualified dotted path. Members inherit the enclosing module unless
// they name their own.
func (l *loader) allocate(n *fileNode, parent decl.DeclID, parentModule, parentPath string) (decl.DeclID, error) {
	kind, err := parseKind(n.Kind)
	if err != nil {
		return decl.NoDeclID, err
	}
	moduleName := n.Module
	if moduleName == "" {
		moduleName = parentModule
	}
	module, ok := l.modules[moduleName]
	if !ok {
		return decl.NoDeclID, fmt.Errorf("decl %q: unknown module %q", n.Name, moduleName)
	}
	vis, err := parseVisibility(n.Visibility)
	if err != nil {
		return decl.NoDeclID, fmt.Errorf("decl %q: %w", n.Name, err)
	}

	d := decl.Decl{
		Kind:       kind,
		Module:     module,
		Parent:     parent,
		Visibility: vis,
	}
	if n.Name != "" {
		d.Name = l.b.Strings().Intern(n.Name)
	}
	if n.Availability != nil {
		d.Availability = decl.Availability{
			Platform:    n.Availability.Platform,
			Unavailable: n.Availability.Unavailable,
			Obsoleted:   n.Availability.Obsoleted,
		}
	}
	id := l.b.AddDecl(d)

	path := parentPath
	if n.Name != "" && kind != decl.KindExtension {
		if path == "" {
			path = moduleName + "." + n.Name
		} else {
			path += "." + n.Name
		}
		l.byPath[path] = id
	}

	if len(n.Inherited) > 0 || n.Extends != "" {
		l.pending = append(l.pending, pendingRef{id: id, refs: n.Inherited, extends: n.Extends})
	}
	if kind == decl.KindExtension && n.Extends == "" {
		return decl.NoDeclID, fmt.Errorf("extension in %q missing extends", moduleName)
	}

	memberPath := path
	if kind == decl.KindExtension {
		// Members of an extension index under the extended nominal's path.
		memberPath = n.Extends
	}
	for i := range n.Members {
		if _, err := l.allocate(&n.Members[i], id, moduleName, memberPath); err != nil {
			return decl.NoDeclID, err
		}
	}
	return id, nil
}

// resolve wires up extends targets and inheritance lists once the path
// index is complete. Members of extensions resolve through the extended
// nominal's path, so the extension node carries no path of its own.
func (l *loader) resolve() error {
	for _, p := range l.pending {
		if p.extends != "" {
			target, ok := l.byPath[p.extends]
			if !ok {
				return fmt.Errorf("extends: unknown declaration %q", p.extends)
			}
			l.b.SetExtended(p.id, target)
		}
		if len(p.refs) == 0 {
			continue
		}
		refs := make([]decl.TypeRefID, 0, len(p.refs))
		for _, r := range p.refs {
			id, err := l.resolveRef(r)
			if err != nil {
				return err
			}
			refs = append(refs, id)
		}
		l.b.SetInherited(p.id, refs)
	}
	return nil
}

func (l *loader) resolveRef(r fileRef) (decl.TypeRefID, error) {
	if r.Path != "" {
		target, ok := l.byPath[r.Path]
		if !ok {
			return decl.NoTypeRefID, fmt.Errorf("inherited: unknown declaration %q", r.Path)
		}
		return l.b.AddNominalRef(target), nil
	}
	members := make([]decl.TypeRefID, 0, len(r.Composition))
	for _, m := range r.Composition {
		id, err := l.resolveRef(m)
		if err != nil {
			return decl.NoTypeRefID, err
		}
		members = append(members, id)
	}
	return l.b.AddCompositionRef(members...), nil
}

func parseKind(s string) (decl.Kind, error) {
	switch strings.ToLower(s) {
	case "struct":
		return decl.KindStruct, nil
	case "class":
		return decl.KindClass, nil
	case "enum":
		return decl.KindEnum, nil
	case "case", "enum.case":
		return decl.KindEnumCase, nil
	case "protocol":
		return decl.KindProtocol, nil
	case "init":
		return decl.KindInitializer, nil
	case "func":
		return decl.KindFunction, nil
	case "var":
		return decl.KindVariable, nil
	case "subscript":
		return decl.KindSubscript, nil
	case "typealias":
		return decl.KindTypeAlias, nil
	case "associatedtype":
		return decl.KindAssociatedType, nil
	case "extension":
		return decl.KindExtension, nil
	case "import":
		return decl.KindImport, nil
	case "param":
		return decl.KindParam, nil
	case "top-level":
		return decl.KindTopLevelCode, nil
	default:
		return decl.KindInvalid, fmt.Errorf("unknown declaration kind %q", s)
	}
}

func parseVisibility(s string) (decl.Visibility, error) {
	switch strings.ToLower(s) {
	case "", "public":
		return decl.VisPublic, nil
	case "internal":
		return decl.VisInternal, nil
	case "private":
		return decl.VisPrivate, nil
	default:
		return decl.VisPrivate, fmt.Errorf("unknown visibility %q", s)
	}
}
