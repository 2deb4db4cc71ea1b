// Package manifest loads the extraction manifest (symgraph.toml): which
// module is under analysis, what it re-exports, and how extension blocks
// are emitted. The manifest is the only mutable input of a walk; everything
// it names is resolved against the declaration tree before extraction
// starts, so the walker itself never touches configuration files.
package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"symgraph/internal/decl"
	"symgraph/internal/symgraph"
)

var (
	// ErrModuleSectionMissing indicates that [module] is missing.
	ErrModuleSectionMissing = errors.New("missing [module]")
	// ErrModuleNameMissing indicates that [module].name is missing.
	ErrModuleNameMissing = errors.New("missing [module].name")
)

// Manifest mirrors the symgraph.toml layout.
type Manifest struct {
	Module  ModuleSection  `toml:"module"`
	Exports ExportsSection `toml:"exports"`
	Output  OutputSection  `toml:"output"`
}

// ModuleSection names the module under analysis and, optionally, the
// overlay declaring module collapsed into the main graph.
type ModuleSection struct {
	Name      string `toml:"name"`
	Declaring string `toml:"declaring"`
}

// ExportsSection carries the pre-computed re-export sets: wholesale
// re-exported modules plus per-module lists of dotted declaration paths.
type ExportsSection struct {
	Modules   []string            `toml:"modules"`
	Qualified map[string][]string `toml:"qualified"`
}

// OutputSection controls emission behavior.
type OutputSection struct {
	ExtensionBlocks bool `toml:"extension_blocks"`
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("module") {
		return nil, fmt.Errorf("%s: %w", path, ErrModuleSectionMissing)
	}
	if strings.TrimSpace(m.Module.Name) == "" {
		return nil, fmt.Errorf("%s: %w", path, ErrModuleNameMissing)
	}
	return &m, nil
}

// Options derives walker options from the manifest.
func (m *Manifest) Options() symgraph.Options {
	return symgraph.Options{
		EmitExtensionBlockSymbols: m.Output.ExtensionBlocks,
		DeclaringModule:           m.Module.Declaring,
	}
}

// ExportFilter resolves the manifest's re-export lists against a tree.
// Qualified entries are dotted paths relative to their source module; an
// entry that resolves to nothing is an error, not a silent skip.
func (m *Manifest) ExportFilter(tree *decl.Tree) (*symgraph.ExportFilter, error) {
	qualified := make(map[string][]decl.DeclID, len(m.Exports.Qualified))
	for module, paths := range m.Exports.Qualified {
		for _, path := range paths {
			id := tree.LookupPath(module, strings.Split(path, "."))
			if !id.IsValid() {
				return nil, fmt.Errorf("exports.qualified: %s: unknown declaration %q", module, path)
			}
			qualified[module] = append(qualified[module], id)
		}
	}
	return symgraph.NewExportFilter(tree, m.Exports.Modules, qualified), nil
}

// MainModule resolves the module under analysis in the tree.
func (m *Manifest) MainModule(tree *decl.Tree) (decl.ModuleID, error) {
	id := tree.ModuleByName(m.Module.Name)
	if !id.IsValid() {
		return decl.NoModuleID, fmt.Errorf("module %q not present in declaration tree", m.Module.Name)
	}
	return id, nil
}
