// Package driver orchestrates extraction runs: loading declaration trees
// and manifests, running one walker per compiled unit, and emitting the
// finished payloads. Units are independent of each other, which is what
// makes the parallel path safe - each walker owns its graphs and caches.
package driver

import (
	"fmt"

	"symgraph/internal/decl"
	"symgraph/internal/declfile"
	"symgraph/internal/encode"
	"symgraph/internal/manifest"
	"symgraph/internal/observ"
	"symgraph/internal/symgraph"
)

// Unit names the inputs of one extraction: a declaration tree document and
// the manifest governing it.
type Unit struct {
	TreePath     string
	ManifestPath string
}

// UnitResult carries everything one extraction produced.
type UnitResult struct {
	Unit     Unit
	Tree     *decl.Tree
	Walker   *symgraph.Walker
	Payloads []encode.GraphPayload
	Timing   observ.Report
}

// ExtractUnit runs the full pipeline for one unit: load tree, load and
// resolve manifest, walk, flatten payloads.
func ExtractUnit(unit Unit) (*UnitResult, error) {
	timer := observ.NewTimer()

	stage := timer.Begin("load-tree")
	tree, err := declfile.LoadFile(unit.TreePath)
	if err != nil {
		return nil, err
	}
	timer.End(stage, fmt.Sprintf("%d decls", tree.NumDecls()))

	stage = timer.Begin("load-manifest")
	man, err := manifest.Load(unit.ManifestPath)
	if err != nil {
		return nil, err
	}
	module, err := man.MainModule(tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit.ManifestPath, err)
	}
	exports, err := man.ExportFilter(tree)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", unit.ManifestPath, err)
	}
	timer.End(stage, "")

	stage = timer.Begin("walk")
	walker := symgraph.NewWalker(tree, module, exports, man.Options())
	walker.Walk()
	timer.End(stage, "")

	stage = timer.Begin("flatten")
	payloads := []encode.GraphPayload{encode.BuildPayload(tree, walker.MainGraph())}
	for _, sub := range walker.ExtendedGraphs() {
		if sub.IsEmpty() {
			continue
		}
		payloads = append(payloads, encode.BuildPayload(tree, sub))
	}
	timer.End(stage, fmt.Sprintf("%d graphs", len(payloads)))

	return &UnitResult{
		Unit:     unit,
		Tree:     tree,
		Walker:   walker,
		Payloads: payloads,
		Timing:   timer.Report(),
	}, nil
}

// WritePayloads emits every payload of a result into dir and returns the
// written paths in emission order.
func WritePayloads(res *UnitResult, dir string, f encode.Format) ([]string, error) {
	paths := make([]string, 0, len(res.Payloads))
	for _, p := range res.Payloads {
		path, err := encode.WriteFile(dir, p, f)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
