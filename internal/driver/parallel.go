package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

// treeSuffix marks declaration tree documents on disk.
const treeSuffix = ".decls.json"

// ListTrees returns the sorted list of declaration tree documents under dir.
// Sorting keeps multi-unit runs deterministic.
func ListTrees(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, treeSuffix) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ExtractAll runs every unit, up to jobs at a time. Results keep the input
// order regardless of completion order. A walker never leaves its goroutine,
// so no graph is ever touched by two workers.
func ExtractAll(ctx context.Context, units []Unit, jobs int) ([]*UnitResult, error) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	results := make([]*UnitResult, len(units))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, unit := range units {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ExtractUnit(unit)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
