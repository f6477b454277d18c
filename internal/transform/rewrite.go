package transform

import (
	"sodagql/internal/ast"
	"sodagql/internal/diag"
)

// rewriter applies the analyzer's replacement plan to the AST. Calls are
// rewritten in post-order, so inner calls land before the ones enclosing
// them and registration statements accumulate in evaluation order.
type rewriter struct {
	b          *ast.Builder
	analyzer   *Analyzer
	synth      *synthesizer
	sourcePath string
	reporter   diag.Reporter

	needsRuntime  bool
	registrations []ast.StmtID
	errors        []PluginError
}

func newRewriter(b *ast.Builder, analyzer *Analyzer, cjs bool, sourcePath string, reporter diag.Reporter) *rewriter {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &rewriter{
		b:          b,
		analyzer:   analyzer,
		synth:      &synthesizer{b: b, cjs: cjs},
		sourcePath: sourcePath,
		reporter:   reporter,
	}
}

func (r *rewriter) run(fid ast.FileID) {
	w := ast.Walker{B: r.b}
	w.ExitExpr = func(id ast.ExprID) {
		e := r.b.Exprs.Get(id)
		if e.Kind != ast.ExprCall {
			return
		}
		rep, ok := r.analyzer.ReplacementFor(e.Span)
		if !ok {
			return
		}
		replacement, registration, ok := r.synth.build(rep)
		if !ok {
			// leave the call untouched and report; the runtime import is
			// only pulled in for calls that actually rewrote
			builderType := rep.Element.Kind.String()
			err := missingBuilderArg(r.sourcePath, builderType, "builder callback")
			r.errors = append(r.errors, err)
			diag.ReportError(r.reporter, diag.TransformMissingArg, e.Span,
				"missing required builder argument for "+builderType).Emit()
			return
		}
		if registration != ast.NoStmtID {
			r.registrations = append(r.registrations, registration)
		}
		r.b.Exprs.Overwrite(id, replacement)
		r.needsRuntime = true
	}
	w.File(fid)
}

func (r *rewriter) takeDiagnostics() []PluginError {
	errs := r.errors
	r.errors = nil
	return errs
}
