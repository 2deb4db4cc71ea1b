// Package encode turns finalized symbol graphs into self-describing
// payloads for downstream documentation tooling. Two formats are supported:
// msgpack for machine consumers and JSON for inspection. The payload schema
// is versioned; readers reject versions they do not understand.
package encode

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"symgraph/internal/decl"
	"symgraph/internal/symgraph"
)

// Schema versions the payload layout - bump when the format changes.
const Schema uint16 = 1

// ErrSchemaMismatch indicates a payload written by an incompatible version.
var ErrSchemaMismatch = errors.New("payload schema mismatch")

// Format selects the output encoding.
type Format uint8

const (
	FormatMsgpack Format = iota
	FormatJSON
)

func (f Format) Ext() string {
	if f == FormatJSON {
		return "json"
	}
	return "msgpack"
}

// ParseFormat maps a user-facing format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "msgpack":
		return FormatMsgpack, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatMsgpack, fmt.Errorf("unsupported format %q (must be msgpack or json)", s)
	}
}

// GraphPayload is the serialized form of one finished graph.
type GraphPayload struct {
	Schema          uint16               `json:"schema"`
	Module          string               `json:"module"`
	DeclaringModule string               `json:"declaring_module,omitempty"`
	Symbols         []SymbolRecord       `json:"symbols"`
	Relationships   []RelationshipRecord `json:"relationships"`
}

// SymbolRecord carries one node, flattened to strings.
type SymbolRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name,omitempty"`
	Kind        string `json:"kind"`
	Module      string `json:"module"`
	Synthesized bool   `json:"synthesized,omitempty"`
}

// RelationshipRecord carries one edge.
type RelationshipRecord struct {
	Kind   string `json:"kind"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// BuildPayload flattens a finalized graph against its declaration tree.
func BuildPayload(tree *decl.Tree, g *symgraph.SymbolGraph) GraphPayload {
	p := GraphPayload{
		Schema: Schema,
		Module: tree.ModuleName(g.Module),
	}
	if g.DeclaringModule.IsValid() {
		p.DeclaringModule = tree.ModuleName(g.DeclaringModule)
	}
	for _, sym := range g.Nodes() {
		d := tree.Decl(sym.Decl)
		p.Symbols = append(p.Symbols, SymbolRecord{
			ID:          sym.ID,
			Name:        tree.Name(sym.Decl),
			Kind:        d.Kind.String(),
			Module:      tree.ModuleName(d.Module),
			Synthesized: sym.IsSynthesized(),
		})
	}
	for _, e := range g.Edges() {
		p.Relationships = append(p.Relationships, RelationshipRecord{
			Kind:   e.Kind.String(),
			Source: e.Source,
			Target: e.Target,
		})
	}
	return p
}

// Filename returns the emission name for a payload: "Main.symbols.<ext>"
// for the main graph, "Main@Extended.symbols.<ext>" for subgraphs.
func Filename(p GraphPayload, f Format) string {
	name := p.Module
	if p.DeclaringModule != "" && p.DeclaringModule != p.Module {
		name = p.Module + "@" + p.DeclaringModule
	}
	return name + ".symbols." + f.Ext()
}

// Marshal encodes a payload in the given format.
func Marshal(p GraphPayload, f Format) ([]byte, error) {
	if f == FormatJSON {
		return json.MarshalIndent(p, "", "  ")
	}
	return msgpack.Marshal(p)
}

// Unmarshal decodes a msgpack payload, rejecting unknown schema versions.
func Unmarshal(data []byte) (GraphPayload, error) {
	var p GraphPayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return GraphPayload{}, fmt.Errorf("failed to decode payload: %w", err)
	}
	if p.Schema != Schema {
		return GraphPayload{}, fmt.Errorf("%w: got %d, want %d", ErrSchemaMismatch, p.Schema, Schema)
	}
	return p, nil
}

// WriteFile emits a payload into dir using the standard naming convention
// and returns the written path.
func WriteFile(dir string, p GraphPayload, f Format) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	data, err := Marshal(p, f)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, Filename(p, f))
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", err
	}
	return path, nil
}

// ReadFile loads a msgpack payload from disk.
func ReadFile(path string) (GraphPayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GraphPayload{}, err
	}
	p, err := Unmarshal(data)
	if err != nil {
		return GraphPayload{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
