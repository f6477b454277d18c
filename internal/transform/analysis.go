package transform

import (
	"sodagql/internal/artifact"
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/source"
)

// Replacement is the analysis result for one builder call: the artifact
// element it resolves to and the inner builder-call arguments captured from
// the callback.
type Replacement struct {
	CanonicalID artifact.CanonicalID
	Element     artifact.Element
	BuilderArgs []ast.ExprID
}

// Analyzer resolves builder calls against the artifact table. It is
// read-only over the AST; the rewriter consumes its replacement map.
type Analyzer struct {
	b          *ast.Builder
	table      artifact.Table
	metadata   MetadataMap
	sourcePath string
	reporter   diag.Reporter

	replacements  map[source.Span]*Replacement
	hasTransforms bool
	errors        []PluginError
}

// NewAnalyzer creates an analyzer over one parsed module. reporter may be
// nil; when set, analysis failures are also reported as span diagnostics.
func NewAnalyzer(b *ast.Builder, table artifact.Table, metadata MetadataMap, sourcePath string, reporter diag.Reporter) *Analyzer {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &Analyzer{
		b:            b,
		table:        table,
		metadata:     metadata,
		sourcePath:   sourcePath,
		reporter:     reporter,
		replacements: make(map[source.Span]*Replacement),
	}
}

// Run scans the module for builder calls.
func (a *Analyzer) Run(fid ast.FileID) {
	w := ast.Walker{B: a.b}
	w.EnterExpr = func(id ast.ExprID) bool {
		e := a.b.Exprs.Get(id)
		if e.Kind == ast.ExprCall {
			data, _ := a.b.Exprs.Call(id)
			a.processCall(e.Span, data)
		}
		return true
	}
	w.File(fid)
}

// HasTransformations reports whether any builder call resolved to an
// artifact element.
func (a *Analyzer) HasTransformations() bool {
	return a.hasTransforms
}

// ReplacementFor returns the replacement plan for the call at span, if the
// call resolved.
func (a *Analyzer) ReplacementFor(span source.Span) (*Replacement, bool) {
	r, ok := a.replacements[span]
	return r, ok
}

// TakeDiagnostics returns the collected wire diagnostics and resets the
// internal slice.
func (a *Analyzer) TakeDiagnostics() []PluginError {
	errs := a.errors
	a.errors = nil
	return errs
}

func (a *Analyzer) processCall(span source.Span, call *ast.ExprCallData) {
	callback, ok := builderCallback(a.b, call)
	if !ok {
		return
	}
	args, ok := innerBuilderCall(a.b, callback)
	if !ok {
		return
	}

	meta, ok := a.metadata[span]
	if !ok {
		a.errors = append(a.errors, metadataNotFound(a.sourcePath))
		diag.ReportWarning(a.reporter, diag.AnaMetadataNotFound, span,
			"no scope metadata for gql call").Emit()
		return
	}

	canonicalID := artifact.MakeCanonicalID(a.sourcePath, meta.ScopePath)
	element, ok := a.table[canonicalID]
	if !ok {
		a.errors = append(a.errors, artifactNotFound(a.sourcePath, string(canonicalID)))
		diag.ReportWarning(a.reporter, diag.AnaArtifactNotFound, span,
			"no artifact for canonical id "+string(canonicalID)).Emit()
		return
	}

	a.replacements[span] = &Replacement{
		CanonicalID: canonicalID,
		Element:     element,
		BuilderArgs: args,
	}
	a.hasTransforms = true
}
