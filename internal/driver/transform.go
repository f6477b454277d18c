// Package driver runs the transform over many files: path collection,
// an errgroup worker pool and an optional disk cache for unchanged inputs.
package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"sodagql/internal/transform"
)

// Options configures a multi-file transform run.
type Options struct {
	ArtifactJSON []byte
	Config       transform.Config

	// Jobs bounds worker parallelism; <= 0 means GOMAXPROCS.
	Jobs int

	// Cache, when set, is consulted before transforming and updated after.
	Cache *DiskCache
}

// FileResult is the outcome for one input file. Err is set for I/O and
// parse failures; wire diagnostics live inside Result.
type FileResult struct {
	Path   string
	Result *transform.Result
	Err    error
	Cached bool
}

// ListSourceFiles walks root and returns every .js, .mjs and .cjs file in
// sorted order. node_modules trees are skipped.
func ListSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return nil
		}
		switch filepath.Ext(path) {
		case ".js", ".mjs", ".cjs":
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

// TransformPaths transforms every path concurrently. Results come back in
// input order regardless of completion order; per-file failures are
// recorded in FileResult.Err and do not abort the run.
func TransformPaths(ctx context.Context, paths []string, opts Options) ([]FileResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	tr, err := transform.NewTransformer(opts.ArtifactJSON, opts.Config)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// indices are unique per goroutine, no mutex needed
	results := make([]FileResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			source, err := os.ReadFile(path)
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}

			key := CacheKey(opts.ArtifactJSON, opts.Config, source)
			if cached, hit, err := opts.Cache.Get(key); err == nil && hit {
				results[i] = FileResult{Path: path, Result: cached, Cached: true}
				return nil
			}

			res, err := tr.Transform(string(source), normalizeInputPath(path))
			if err != nil {
				results[i] = FileResult{Path: path, Err: err}
				return nil
			}
			if err := opts.Cache.Put(key, res); err != nil {
				// a broken cache never fails the transform
				results[i] = FileResult{Path: path, Result: res}
				return nil
			}
			results[i] = FileResult{Path: path, Result: res}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// normalizeInputPath makes canonical ids stable across invocation
// spellings of the same file.
func normalizeInputPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(abs)
}

// HasErrors reports whether any file failed fatally or produced wire
// diagnostics.
func HasErrors(results []FileResult) bool {
	for _, r := range results {
		if r.Err != nil {
			return true
		}
		if r.Result != nil && len(r.Result.Errors) > 0 {
			return true
		}
	}
	return false
}

// OutputPath maps an input path into outDir, preserving the path relative
// to root. Falls back to the bare file name for paths outside root.
func OutputPath(root, outDir, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(path)
	}
	return filepath.Join(outDir, rel)
}
