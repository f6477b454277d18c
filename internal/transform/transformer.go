// Package transform rewrites declarative gql builder calls into lean
// runtime calls using the prebuilt artifact descriptors. A transform is
// pure given (source, path, artifact table, config): the same input always
// produces the same bytes.
package transform

import (
	"fmt"

	"sodagql/internal/artifact"
	"sodagql/internal/ast"
	"sodagql/internal/diag"
	"sodagql/internal/emit"
	"sodagql/internal/parser"
	"sodagql/internal/source"
)

// stubOutput replaces the declarative system module and inject modules.
const stubOutput = "export {};\n"

// maxParseErrors bounds diagnostic collection for one file.
const maxParseErrors = 64

// Result is the outcome of one file transformation. The JSON tags are the
// wire contract with the calling build tooling.
type Result struct {
	OutputCode  string        `json:"outputCode"`
	Transformed bool          `json:"transformed"`
	Errors      []PluginError `json:"errors,omitempty"`
	SourceMap   *string       `json:"sourceMap,omitempty"`
}

// Transformer holds a decoded artifact table and config for transforming
// many files. It is safe for concurrent use; the table is never mutated
// after construction.
type Transformer struct {
	table artifact.Table
	cfg   Config

	// Reporter receives span-level diagnostics alongside the wire errors.
	// Nil means they are dropped.
	Reporter diag.Reporter
}

// NewTransformer decodes the artifact once and returns a reusable
// transformer.
func NewTransformer(artifactJSON []byte, cfg Config) (*Transformer, error) {
	table, err := artifact.Decode(artifactJSON)
	if err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	return &Transformer{table: table, cfg: cfg}, nil
}

// Transform runs the one-shot pipeline: decode the artifact, then
// transform a single source file.
func Transform(input Input) (*Result, error) {
	if input.Config.isStubPath(input.SourcePath) {
		return &Result{OutputCode: stubOutput, Transformed: true}, nil
	}
	t, err := NewTransformer([]byte(input.ArtifactJSON), input.Config)
	if err != nil {
		return nil, err
	}
	return t.Transform(input.SourceCode, input.SourcePath)
}

// Transform rewrites one source file. Parse failures are fatal; analysis
// and synthesis failures are collected into Result.Errors and never abort.
func (t *Transformer) Transform(sourceCode, sourcePath string) (*Result, error) {
	if t.cfg.isStubPath(sourcePath) {
		return &Result{OutputCode: stubOutput, Transformed: true}, nil
	}

	fs := source.NewFileSet()
	sf := fs.Get(fs.AddVirtual(sourcePath, []byte(sourceCode)))

	bag := diag.NewBag(maxParseErrors)
	reporter := t.reporter(bag)
	b := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(fs, sf, b, parser.Options{
		MaxErrors: maxParseErrors,
		Reporter:  reporter,
	})
	if bag.HasErrors() {
		return nil, fmt.Errorf("parse %s: %d error(s), first: %s",
			sourcePath, bag.Len(), firstError(bag))
	}

	normalizedPath := source.NormalizePath(sourcePath)
	metadata := CollectMetadata(b, parsed.File)
	analyzer := NewAnalyzer(b, t.table, metadata, normalizedPath, reporter)
	analyzer.Run(parsed.File)

	if !analyzer.HasTransformations() {
		return &Result{
			OutputCode: sourceCode,
			Errors:     analyzer.TakeDiagnostics(),
		}, nil
	}

	rw := newRewriter(b, analyzer, t.cfg.IsCjs, normalizedPath, reporter)
	rw.run(parsed.File)

	im := &importManager{b: b, cfg: &t.cfg, needsRuntime: rw.needsRuntime}
	im.run(parsed.File)

	insertRegistrations(b, parsed.File, rw.registrations)

	emitted, err := emit.EmitFile(sf, b, parsed.File, emit.Options{SourceMap: t.cfg.SourceMap})
	if err != nil {
		return nil, fmt.Errorf("emit %s: %w", sourcePath, err)
	}

	errors := analyzer.TakeDiagnostics()
	errors = append(errors, rw.takeDiagnostics()...)

	res := &Result{
		OutputCode:  string(emitted.Code),
		Transformed: true,
		Errors:      errors,
	}
	if emitted.SourceMap != nil {
		m := string(emitted.SourceMap)
		res.SourceMap = &m
	}
	return res, nil
}

// reporter always feeds the internal bag, teeing into the caller's
// reporter when one is set.
func (t *Transformer) reporter(bag *diag.Bag) diag.Reporter {
	base := diag.Reporter(&diag.BagReporter{Bag: bag})
	if t.Reporter == nil {
		return base
	}
	return teeReporter{base, t.Reporter}
}

type teeReporter [2]diag.Reporter

func (t teeReporter) Report(code diag.Code, sev diag.Severity, span source.Span, msg string, notes []diag.Note) {
	t[0].Report(code, sev, span, msg, notes)
	t[1].Report(code, sev, span, msg, notes)
}

func firstError(bag *diag.Bag) string {
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			return d.Message
		}
	}
	return "unknown"
}
