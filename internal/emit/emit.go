// Package emit prints a rewritten module back to source text. Untouched
// spans are copied byte-for-byte from the original file so formatting,
// comments and string spellings survive; only synthesized nodes are printed
// structurally. The writer can record a source map alongside the output.
package emit

import (
	"encoding/json"

	"sodagql/internal/ast"
	"sodagql/internal/source"
)

// Options controls emission.
type Options struct {
	// SourceMap enables source map v3 generation.
	SourceMap bool
}

// Result is the emitted module text with an optional source map.
type Result struct {
	Code      []byte
	SourceMap []byte // nil unless Options.SourceMap was set
}

// EmitFile prints the module rooted at fid.
func EmitFile(sf *source.File, b *ast.Builder, fid ast.FileID, opts Options) (Result, error) {
	w := NewWriter(sf, opts.SourceMap)
	p := &printer{b: b, sf: sf, w: w}
	p.printFile(fid)

	res := Result{Code: w.Bytes()}
	if opts.SourceMap {
		m, err := w.maps.Render(sf.Path, sf.Content)
		if err != nil {
			return Result{}, err
		}
		res.SourceMap = m
	}
	return res, nil
}

// quoteString renders s as a double-quoted string literal. JSON escaping is
// a strict subset of what JavaScript string literals accept.
func quoteString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}
